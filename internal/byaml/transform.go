package byaml

// Vec3 is a 3D vector, grounded on jack/src/byaml/mod.rs's Vec3.
type Vec3 struct {
	X, Y, Z float32
}

// Transform is BYAML's nine-element transform tuple: scale, rotate, then
// translate, each an x/y/z triple — grounded directly on
// jack/src/byaml/mod.rs's Transform, whose custom serde Visitor deserializes
// strictly to nine sequential elements and rejects anything else.
type Transform struct {
	Scale     Vec3
	Rotate    Vec3
	Translate Vec3
}

// ToTransformTuple implements Transformable.
func (t Transform) ToTransformTuple() [9]float32 {
	return [9]float32{
		t.Scale.X, t.Scale.Y, t.Scale.Z,
		t.Rotate.X, t.Rotate.Y, t.Rotate.Z,
		t.Translate.X, t.Translate.Y, t.Translate.Z,
	}
}

// FromTransformTuple implements Transformable.
func (t *Transform) FromTransformTuple(v [9]float32) {
	t.Scale = Vec3{v[0], v[1], v[2]}
	t.Rotate = Vec3{v[3], v[4], v[5]}
	t.Translate = Vec3{v[6], v[7], v[8]}
}

// Add adds the values of other to t in place, mirroring Transform::add.
func (t *Transform) Add(other Transform) {
	t.Scale.X += other.Scale.X
	t.Scale.Y += other.Scale.Y
	t.Scale.Z += other.Scale.Z
	t.Rotate.X += other.Rotate.X
	t.Rotate.Y += other.Rotate.Y
	t.Rotate.Z += other.Rotate.Z
	t.Translate.X += other.Translate.X
	t.Translate.Y += other.Translate.Y
	t.Translate.Z += other.Translate.Z
}
