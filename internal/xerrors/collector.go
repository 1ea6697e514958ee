package xerrors

import "fmt"

// Collector is a wrapper around []error that simplifies code where multiple
// errors can happen and need to be aggregated for collective display.
//
// Modeled directly on holo-build's errorCollector: Add is a no-op on nil so
// callers can write collector.Add(operationThatMightFail()) unconditionally.
type Collector struct {
	Errors []error
}

// Add adds an error to the collector. If err is nil, nothing happens.
func (c *Collector) Add(err error) {
	if err != nil {
		c.Errors = append(c.Errors, err)
	}
}

// Addf adds an error built from a format string and arguments.
func (c *Collector) Addf(format string, args ...interface{}) {
	if len(args) > 0 {
		c.Errors = append(c.Errors, fmt.Errorf(format, args...))
	} else {
		c.Errors = append(c.Errors, fmt.Errorf("%s", format))
	}
}

// Ok reports whether no errors were collected.
func (c *Collector) Ok() bool { return len(c.Errors) == 0 }

// Err returns nil if no errors were collected, the sole error if exactly one
// was collected, or a combined error listing all of them otherwise.
func (c *Collector) Err() error {
	switch len(c.Errors) {
	case 0:
		return nil
	case 1:
		return c.Errors[0]
	default:
		msg := fmt.Sprintf("%d errors occurred:", len(c.Errors))
		for _, err := range c.Errors {
			msg += "\n  - " + err.Error()
		}
		return fmt.Errorf("%s", msg)
	}
}
