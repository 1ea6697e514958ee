package byaml

import "testing"

type setRecord struct {
	Name *string  `byaml:"NME"`
	Pos  []float32 `byaml:"POS"`
}

func TestStructRoundTrip(t *testing.T) {
	name := "torch"
	in := setRecord{Name: &name, Pos: []float32{1, 2, 3}}
	data, err := Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out setRecord
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Name == nil || *out.Name != "torch" {
		t.Fatalf("got name %v", out.Name)
	}
	if len(out.Pos) != 3 || out.Pos[0] != 1 || out.Pos[2] != 3 {
		t.Fatalf("got pos %v", out.Pos)
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	data := Encode(OrderedDict{
		{Key: "NME", Value: "x"},
		{Key: "EXTRA", Value: int32(1)},
	})
	var out setRecord
	if err := Unmarshal(data, &out); err == nil {
		t.Fatal("expected unknown-field error")
	}
}

func TestTransformTupleRoundTrip(t *testing.T) {
	in := Transform{
		Scale:     Vec3{1, 1, 1},
		Rotate:    Vec3{0, 90, 0},
		Translate: Vec3{10, 0, -5},
	}
	data, err := Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out Transform
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestTransformTupleWrongLengthFails(t *testing.T) {
	data := Encode([]interface{}{float32(1), float32(2)})
	var out Transform
	if err := Unmarshal(data, &out); err == nil {
		t.Fatal("expected error for short transform tuple")
	}
}
