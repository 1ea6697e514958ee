package byaml

import (
	"reflect"

	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// Transformable lets a type opt into BYAML's nine-element transform-tuple
// encoding (scale/rotate/translate, each an x/y/z float32 triple) instead of
// the default dict-of-fields binding.
type Transformable interface {
	ToTransformTuple() [9]float32
	FromTransformTuple([9]float32)
}

// Unmarshal decodes data and binds it into v, which must be a pointer to a
// struct. Struct fields are matched by their `byaml:"NAME"` tag; any dict key
// present in data with no matching tag makes Unmarshal fail, per spec.md
// §4.3's "rejects unknown fields."
func Unmarshal(data []byte, v interface{}) error {
	root, err := Decode(data)
	if err != nil {
		return err
	}
	return bindValue(root, reflect.ValueOf(v))
}

func bindValue(node interface{}, rv reflect.Value) error {
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return xerrors.BadFormat("byaml.bind", "destination must be a non-nil pointer")
	}
	elem := rv.Elem()

	if t, ok := rv.Interface().(Transformable); ok {
		tuple, err := nodeToTuple9(node)
		if err != nil {
			return err
		}
		t.FromTransformTuple(tuple)
		return nil
	}

	switch elem.Kind() {
	case reflect.Struct:
		dict, ok := node.(OrderedDict)
		if !ok {
			return xerrors.BadFormat("byaml.bind", "expected a dict node for struct binding")
		}
		return bindStruct(dict, elem)
	case reflect.Slice:
		arr, ok := node.([]interface{})
		if !ok {
			return xerrors.BadFormat("byaml.bind", "expected an array node for slice binding")
		}
		out := reflect.MakeSlice(elem.Type(), len(arr), len(arr))
		for i, item := range arr {
			itemPtr := reflect.New(elem.Type().Elem())
			if err := bindValue(item, itemPtr); err != nil {
				return err
			}
			out.Index(i).Set(itemPtr.Elem())
		}
		elem.Set(out)
		return nil
	case reflect.String:
		s, ok := node.(string)
		if !ok {
			return xerrors.BadFormat("byaml.bind", "expected a string node")
		}
		elem.SetString(s)
		return nil
	case reflect.Bool:
		b, ok := node.(bool)
		if !ok {
			return xerrors.BadFormat("byaml.bind", "expected a bool node")
		}
		elem.SetBool(b)
		return nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		i, ok := node.(int32)
		if !ok {
			return xerrors.BadFormat("byaml.bind", "expected an int node")
		}
		elem.SetInt(int64(i))
		return nil
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		u, ok := node.(uint32)
		if !ok {
			return xerrors.BadFormat("byaml.bind", "expected a uint node")
		}
		elem.SetUint(uint64(u))
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := node.(float32)
		if !ok {
			return xerrors.BadFormat("byaml.bind", "expected a float node")
		}
		elem.SetFloat(float64(f))
		return nil
	case reflect.Ptr:
		if node == nil {
			elem.Set(reflect.Zero(elem.Type()))
			return nil
		}
		inner := reflect.New(elem.Type().Elem())
		if err := bindValue(node, inner); err != nil {
			return err
		}
		elem.Set(inner)
		return nil
	default:
		return xerrors.Unsupported("byaml.bind", "unsupported destination kind "+elem.Kind().String())
	}
}

func bindStruct(dict OrderedDict, sv reflect.Value) error {
	st := sv.Type()
	consumed := make(map[string]bool, len(dict))

	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		tag := f.Tag.Get("byaml")
		if tag == "" || tag == "-" {
			continue
		}
		val, ok := dict.Get(tag)
		if !ok {
			if isOptional(f.Type) {
				continue
			}
			return xerrors.BadFormat("byaml.bind", "missing required field "+tag)
		}
		consumed[tag] = true
		fv := sv.Field(i)
		fieldPtr := reflect.New(fv.Type())
		if err := bindValue(val, fieldPtr); err != nil {
			return err
		}
		fv.Set(fieldPtr.Elem())
	}

	for _, kv := range dict {
		if !consumed[kv.Key] {
			return xerrors.BadFormat("byaml.bind", "unknown field "+kv.Key)
		}
	}
	return nil
}

func isOptional(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice
}

func transformTupleNode(t Transformable) []interface{} {
	tuple := t.ToTransformTuple()
	out := make([]interface{}, 9)
	for i, f := range tuple {
		out[i] = f
	}
	return out
}

func nodeToTuple9(node interface{}) ([9]float32, error) {
	var out [9]float32
	arr, ok := node.([]interface{})
	if !ok || len(arr) != 9 {
		return out, xerrors.BadFormat("byaml.transform", "expected a nine-element tuple")
	}
	for i, v := range arr {
		f, ok := v.(float32)
		if !ok {
			return out, xerrors.BadFormat("byaml.transform", "transform tuple element must be a float")
		}
		out[i] = f
	}
	return out, nil
}

// Marshal encodes v (a struct, or a Transformable) back to BYAML bytes,
// preserving struct field declaration order (spec.md §4.3).
func Marshal(v interface{}) ([]byte, error) {
	node, err := marshalValue(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return Encode(node), nil
}

func marshalValue(rv reflect.Value) (interface{}, error) {
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		if t, ok := rv.Interface().(Transformable); ok {
			return transformTupleNode(t), nil
		}
		rv = rv.Elem()
	} else if rv.CanAddr() {
		if t, ok := rv.Addr().Interface().(Transformable); ok {
			return transformTupleNode(t), nil
		}
	}

	switch rv.Kind() {
	case reflect.Struct:
		st := rv.Type()
		var dict OrderedDict
		for i := 0; i < st.NumField(); i++ {
			f := st.Field(i)
			tag := f.Tag.Get("byaml")
			if tag == "" || tag == "-" {
				continue
			}
			fv := rv.Field(i)
			if isOptional(f.Type) && fv.IsZero() {
				continue
			}
			val, err := marshalValue(fv)
			if err != nil {
				return nil, err
			}
			dict = append(dict, KV{Key: tag, Value: val})
		}
		return dict, nil
	case reflect.Slice:
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			val, err := marshalValue(rv.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		return int32(rv.Int()), nil
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		return uint32(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return float32(rv.Float()), nil
	default:
		return nil, xerrors.Unsupported("byaml.marshal", "unsupported source kind "+rv.Kind().String())
	}
}
