package scene

import (
	"github.com/rickfay/albw-randomizer/internal/byaml"
	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// Encode serializes a Stage to BYAML bytes.
func Encode(s *Stage) []byte {
	return byaml.Encode(stageToNode(s))
}

// Decode parses BYAML bytes into a Stage.
func Decode(data []byte) (*Stage, error) {
	node, err := byaml.Decode(data)
	if err != nil {
		return nil, err
	}
	return stageFromNode(node)
}

func asDict(node interface{}, context string) (byaml.OrderedDict, error) {
	d, ok := node.(byaml.OrderedDict)
	if !ok {
		return nil, xerrors.BadFormat("scene.bind", context+": expected a dict node")
	}
	return d, nil
}

func asArray(node interface{}, context string) ([]interface{}, error) {
	a, ok := node.([]interface{})
	if !ok {
		return nil, xerrors.BadFormat("scene.bind", context+": expected an array node")
	}
	return a, nil
}

func asInt32(node interface{}, context string) (int32, error) {
	v, ok := node.(int32)
	if !ok {
		return 0, xerrors.BadFormat("scene.bind", context+": expected an int node")
	}
	return v, nil
}

func asFloat32(node interface{}, context string) (float32, error) {
	v, ok := node.(float32)
	if !ok {
		return 0, xerrors.BadFormat("scene.bind", context+": expected a float node")
	}
	return v, nil
}

func asBool(node interface{}, context string) (bool, error) {
	v, ok := node.(bool)
	if !ok {
		return false, xerrors.BadFormat("scene.bind", context+": expected a bool node")
	}
	return v, nil
}

func asString(node interface{}, context string) (string, error) {
	v, ok := node.(string)
	if !ok {
		return "", xerrors.BadFormat("scene.bind", context+": expected a string node")
	}
	return v, nil
}

// requirePresent errors if any of keys is absent from d.
func requirePresent(d byaml.OrderedDict, keys []string, context string) error {
	seen := make(map[string]bool, len(d))
	for _, kv := range d {
		seen[kv.Key] = true
	}
	for _, k := range keys {
		if !seen[k] {
			return xerrors.BadFormat("scene.bind", context+": missing field "+k)
		}
	}
	return nil
}

// rejectUnknownKeys errors if d carries any key not in allowed.
func rejectUnknownKeys(d byaml.OrderedDict, allowed []string, context string) error {
	allow := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		allow[k] = true
	}
	for _, kv := range d {
		if !allow[kv.Key] {
			return xerrors.BadFormat("scene.bind", context+": unknown field "+kv.Key)
		}
	}
	return nil
}

// requireKeys checks that d's keys are exactly keys: every one of them
// present, and nothing else.
func requireKeys(d byaml.OrderedDict, keys []string, context string) error {
	if err := requirePresent(d, keys, context); err != nil {
		return err
	}
	return rejectUnknownKeys(d, keys, context)
}

func (a Arg) toNode() []interface{} {
	return []interface{}{
		a.A0, a.A1, a.A2, a.A3,
		int32(a.A4), int32(a.A5),
		uint32(a.A6), uint32(a.A7),
		a.A8, a.A9, a.A10, a.A11, a.A12,
		a.A13,
	}
}

func argFromNode(node interface{}) (Arg, error) {
	arr, err := asArray(node, "Arg")
	if err != nil {
		return Arg{}, err
	}
	if len(arr) != 14 {
		return Arg{}, xerrors.BadFormat("scene.bind", "Arg: expected 14 elements")
	}
	get32 := func(i int) (int32, error) { return asInt32(arr[i], "Arg") }
	var a Arg
	var e error
	if a.A0, e = get32(0); e != nil {
		return a, e
	}
	if a.A1, e = get32(1); e != nil {
		return a, e
	}
	if a.A2, e = get32(2); e != nil {
		return a, e
	}
	if a.A3, e = get32(3); e != nil {
		return a, e
	}
	v4, e := get32(4)
	if e != nil {
		return a, e
	}
	a.A4 = uint8(v4)
	v5, e := get32(5)
	if e != nil {
		return a, e
	}
	a.A5 = uint8(v5)
	u6, ok := arr[6].(uint32)
	if !ok {
		return a, xerrors.BadFormat("scene.bind", "Arg[6]: expected a uint node")
	}
	a.A6 = uint16(u6)
	u7, ok := arr[7].(uint32)
	if !ok {
		return a, xerrors.BadFormat("scene.bind", "Arg[7]: expected a uint node")
	}
	a.A7 = uint16(u7)
	if a.A8, e = get32(8); e != nil {
		return a, e
	}
	if a.A9, e = get32(9); e != nil {
		return a, e
	}
	if a.A10, e = get32(10); e != nil {
		return a, e
	}
	if a.A11, e = get32(11); e != nil {
		return a, e
	}
	if a.A12, e = get32(12); e != nil {
		return a, e
	}
	if a.A13, e = asFloat32(arr[13], "Arg"); e != nil {
		return a, e
	}
	return a, nil
}

func (f Flg) toNode() []interface{} {
	return []interface{}{int32(f.EnableKind), int32(f.DisableKind), uint32(f.EnableValue), uint32(f.DisableValue)}
}

func flgFromNode(node interface{}) (Flg, error) {
	arr, err := asArray(node, "Flg")
	if err != nil {
		return Flg{}, err
	}
	if len(arr) != 4 {
		return Flg{}, xerrors.BadFormat("scene.bind", "Flg: expected 4 elements")
	}
	ek, ok := arr[0].(int32)
	if !ok {
		return Flg{}, xerrors.BadFormat("scene.bind", "Flg[0]: expected an int node")
	}
	dk, ok := arr[1].(int32)
	if !ok {
		return Flg{}, xerrors.BadFormat("scene.bind", "Flg[1]: expected an int node")
	}
	ev, ok := arr[2].(uint32)
	if !ok {
		return Flg{}, xerrors.BadFormat("scene.bind", "Flg[2]: expected a uint node")
	}
	dv, ok := arr[3].(uint32)
	if !ok {
		return Flg{}, xerrors.BadFormat("scene.bind", "Flg[3]: expected a uint node")
	}
	return Flg{EnableKind: uint8(ek), DisableKind: uint8(dk), EnableValue: uint16(ev), DisableValue: uint16(dv)}, nil
}

func (l Lnk) toNode() []interface{} {
	return []interface{}{uint32(l.Unq), int32(l.A), int32(l.B)}
}

func lnkFromNode(node interface{}) (Lnk, error) {
	arr, err := asArray(node, "Lnk")
	if err != nil {
		return Lnk{}, err
	}
	if len(arr) != 3 {
		return Lnk{}, xerrors.BadFormat("scene.bind", "Lnk: expected 3 elements")
	}
	unq, ok := arr[0].(uint32)
	if !ok {
		return Lnk{}, xerrors.BadFormat("scene.bind", "Lnk[0]: expected a uint node")
	}
	a, ok := arr[1].(int32)
	if !ok {
		return Lnk{}, xerrors.BadFormat("scene.bind", "Lnk[1]: expected an int node")
	}
	b, ok := arr[2].(int32)
	if !ok {
		return Lnk{}, xerrors.BadFormat("scene.bind", "Lnk[2]: expected an int node")
	}
	return Lnk{Unq: uint16(unq), A: int16(a), B: int16(b)}, nil
}

func lnkSliceToNode(lnks []Lnk) []interface{} {
	out := make([]interface{}, len(lnks))
	for i, l := range lnks {
		out[i] = l.toNode()
	}
	return out
}

func lnkSliceFromNode(node interface{}) ([]Lnk, error) {
	arr, err := asArray(node, "Lnk[]")
	if err != nil {
		return nil, err
	}
	out := make([]Lnk, len(arr))
	for i, e := range arr {
		l, err := lnkFromNode(e)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

func transformToNode(t Transform) []interface{} {
	tuple := t.ToTransformTuple()
	out := make([]interface{}, 9)
	for i, f := range tuple {
		out[i] = f
	}
	return out
}

func transformFromNode(node interface{}) (Transform, error) {
	arr, err := asArray(node, "Transform")
	if err != nil {
		return Transform{}, err
	}
	if len(arr) != 9 {
		return Transform{}, xerrors.BadFormat("scene.bind", "Transform: expected 9 elements")
	}
	var tuple [9]float32
	for i, v := range arr {
		f, ok := v.(float32)
		if !ok {
			return Transform{}, xerrors.BadFormat("scene.bind", "Transform: expected float elements")
		}
		tuple[i] = f
	}
	var t Transform
	t.FromTransformTuple(tuple)
	return t, nil
}

func objToNode(o Obj) byaml.OrderedDict {
	ril := make([]interface{}, len(o.Ril))
	for i, r := range o.Ril {
		ril[i] = []interface{}{r[0], r[1]}
	}
	d := byaml.OrderedDict{
		{Key: "ARG", Value: o.Arg.toNode()},
		{Key: "CLP", Value: int32(o.Clp)},
		{Key: "FLG", Value: o.Flg.toNode()},
		{Key: "ID", Value: int32(o.Id)},
		{Key: "LNK", Value: lnkSliceToNode(o.Lnk)},
	}
	if o.Nme != nil {
		d = append(d, byaml.KV{Key: "NME", Value: *o.Nme})
	}
	d = append(d, byaml.KV{Key: "RIL", Value: ril})
	if o.Ser != nil {
		d = append(d, byaml.KV{Key: "SER", Value: uint32(*o.Ser)})
	}
	d = append(d,
		byaml.KV{Key: "SRT", Value: transformToNode(o.Srt)},
		byaml.KV{Key: "TYP", Value: o.Typ},
		byaml.KV{Key: "UNQ", Value: uint32(o.Unq)},
	)
	return d
}

// objRequiredKeys are every Obj field the Rust original (stage.rs's Obj,
// #[serde(deny_unknown_fields)]) declares non-Option; objOptionalKeys are
// the two it declares Option<_> (NME, SER).
var objRequiredKeys = []string{"ARG", "CLP", "FLG", "ID", "LNK", "RIL", "SRT", "TYP", "UNQ"}
var objOptionalKeys = []string{"NME", "SER"}

func objFromNode(node interface{}) (Obj, error) {
	d, err := asDict(node, "Obj")
	if err != nil {
		return Obj{}, err
	}
	if err := requirePresent(d, objRequiredKeys, "Obj"); err != nil {
		return Obj{}, err
	}
	allowed := append(append([]string(nil), objRequiredKeys...), objOptionalKeys...)
	if err := rejectUnknownKeys(d, allowed, "Obj"); err != nil {
		return Obj{}, err
	}

	var o Obj
	argNode, _ := d.Get("ARG")
	if o.Arg, err = argFromNode(argNode); err != nil {
		return o, err
	}
	clpNode, _ := d.Get("CLP")
	i, err := asInt32(clpNode, "Obj.CLP")
	if err != nil {
		return o, err
	}
	o.Clp = int16(i)
	flgNode, _ := d.Get("FLG")
	if o.Flg, err = flgFromNode(flgNode); err != nil {
		return o, err
	}
	idNode, _ := d.Get("ID")
	i, err = asInt32(idNode, "Obj.ID")
	if err != nil {
		return o, err
	}
	o.Id = int16(i)
	lnkNode, _ := d.Get("LNK")
	if o.Lnk, err = lnkSliceFromNode(lnkNode); err != nil {
		return o, err
	}
	if v, ok := d.Get("NME"); ok {
		s, err := asString(v, "Obj.NME")
		if err != nil {
			return o, err
		}
		o.Nme = &s
	}
	rilNode, _ := d.Get("RIL")
	rilArr, err := asArray(rilNode, "Obj.RIL")
	if err != nil {
		return o, err
	}
	o.Ril = make([][2]int32, len(rilArr))
	for i, e := range rilArr {
		pair, err := asArray(e, "Obj.RIL[]")
		if err != nil {
			return o, err
		}
		if len(pair) != 2 {
			return o, xerrors.BadFormat("scene.bind", "Obj.RIL[]: expected 2 elements")
		}
		a, err := asInt32(pair[0], "Obj.RIL[][0]")
		if err != nil {
			return o, err
		}
		b, err := asInt32(pair[1], "Obj.RIL[][1]")
		if err != nil {
			return o, err
		}
		o.Ril[i] = [2]int32{a, b}
	}
	if v, ok := d.Get("SER"); ok {
		u, ok := v.(uint32)
		if !ok {
			return o, xerrors.BadFormat("scene.bind", "Obj.SER: expected a uint node")
		}
		ser := uint16(u)
		o.Ser = &ser
	}
	srtNode, _ := d.Get("SRT")
	if o.Srt, err = transformFromNode(srtNode); err != nil {
		return o, err
	}
	typNode, _ := d.Get("TYP")
	if o.Typ, err = asInt32(typNode, "Obj.TYP"); err != nil {
		return o, err
	}
	unqNode, _ := d.Get("UNQ")
	u, ok := unqNode.(uint32)
	if !ok {
		return o, xerrors.BadFormat("scene.bind", "Obj.UNQ: expected a uint node")
	}
	o.Unq = uint16(u)
	return o, nil
}

func (a RailArg) toNode() []interface{} {
	return []interface{}{a.A0, a.A1, a.A2, a.A3, a.A4, a.A5}
}

func railArgFromNode(node interface{}) (RailArg, error) {
	arr, err := asArray(node, "RailArg")
	if err != nil {
		return RailArg{}, err
	}
	if len(arr) != 6 {
		return RailArg{}, xerrors.BadFormat("scene.bind", "RailArg: expected 6 elements")
	}
	var a RailArg
	if a.A0, err = asInt32(arr[0], "RailArg"); err != nil {
		return a, err
	}
	if a.A1, err = asInt32(arr[1], "RailArg"); err != nil {
		return a, err
	}
	if a.A2, err = asInt32(arr[2], "RailArg"); err != nil {
		return a, err
	}
	if a.A3, err = asInt32(arr[3], "RailArg"); err != nil {
		return a, err
	}
	if a.A4, err = asFloat32(arr[4], "RailArg"); err != nil {
		return a, err
	}
	if a.A5, err = asFloat32(arr[5], "RailArg"); err != nil {
		return a, err
	}
	return a, nil
}

func pointToNode(p Point) byaml.OrderedDict {
	ctl := make([]interface{}, len(p.Ctl))
	for i, f := range p.Ctl {
		ctl[i] = f
	}
	return byaml.OrderedDict{
		{Key: "ARG", Value: p.Arg.toNode()},
		{Key: "CTL", Value: ctl},
		{Key: "LNK", Value: lnkSliceToNode(p.Lnk)},
		{Key: "SRT", Value: transformToNode(p.Srt)},
	}
}

func pointFromNode(node interface{}) (Point, error) {
	d, err := asDict(node, "Point")
	if err != nil {
		return Point{}, err
	}
	if err := requireKeys(d, []string{"ARG", "CTL", "LNK", "SRT"}, "Point"); err != nil {
		return Point{}, err
	}
	var p Point
	argNode, _ := d.Get("ARG")
	if p.Arg, err = railArgFromNode(argNode); err != nil {
		return p, err
	}
	ctlNode, _ := d.Get("CTL")
	ctlArr, err := asArray(ctlNode, "Point.CTL")
	if err != nil {
		return p, err
	}
	if len(ctlArr) != 6 {
		return p, xerrors.BadFormat("scene.bind", "Point.CTL: expected 6 elements")
	}
	for i, v := range ctlArr {
		if p.Ctl[i], err = asFloat32(v, "Point.CTL"); err != nil {
			return p, err
		}
	}
	lnkNode, _ := d.Get("LNK")
	if p.Lnk, err = lnkSliceFromNode(lnkNode); err != nil {
		return p, err
	}
	srtNode, _ := d.Get("SRT")
	if p.Srt, err = transformFromNode(srtNode); err != nil {
		return p, err
	}
	return p, nil
}

func railToNode(r Rail) byaml.OrderedDict {
	pnt := make([]interface{}, len(r.Pnt))
	for i, p := range r.Pnt {
		pnt[i] = pointToNode(p)
	}
	return byaml.OrderedDict{
		{Key: "ARG", Value: r.Arg.toNode()},
		{Key: "PNT", Value: pnt},
		{Key: "RNG", Value: r.Rng},
		{Key: "UNQ", Value: uint32(r.Unq)},
	}
}

func railFromNode(node interface{}) (Rail, error) {
	d, err := asDict(node, "Rail")
	if err != nil {
		return Rail{}, err
	}
	if err := requireKeys(d, []string{"ARG", "PNT", "RNG", "UNQ"}, "Rail"); err != nil {
		return Rail{}, err
	}
	var r Rail
	argNode, _ := d.Get("ARG")
	if r.Arg, err = railArgFromNode(argNode); err != nil {
		return r, err
	}
	pntNode, _ := d.Get("PNT")
	pntArr, err := asArray(pntNode, "Rail.PNT")
	if err != nil {
		return r, err
	}
	r.Pnt = make([]Point, len(pntArr))
	for i, e := range pntArr {
		if r.Pnt[i], err = pointFromNode(e); err != nil {
			return r, err
		}
	}
	rngNode, _ := d.Get("RNG")
	if r.Rng, err = asBool(rngNode, "Rail.RNG"); err != nil {
		return r, err
	}
	unqNode, _ := d.Get("UNQ")
	u, ok := unqNode.(uint32)
	if !ok {
		return r, xerrors.BadFormat("scene.bind", "Rail.UNQ: expected a uint node")
	}
	r.Unq = uint16(u)
	return r, nil
}

func stageToNode(s *Stage) byaml.OrderedDict {
	rails := make([]interface{}, len(s.Rails))
	for i, r := range s.Rails {
		rails[i] = railToNode(r)
	}
	system := make([]interface{}, len(s.System))
	for i, o := range s.System {
		system[i] = objToNode(o)
	}
	objs := make([]interface{}, len(s.Objs))
	for i, o := range s.Objs {
		objs[i] = objToNode(o)
	}
	return byaml.OrderedDict{
		{Key: "Rails", Value: rails},
		{Key: "System", Value: system},
		{Key: "Objs", Value: objs},
	}
}

func stageFromNode(node interface{}) (*Stage, error) {
	d, err := asDict(node, "Stage")
	if err != nil {
		return nil, err
	}
	if err := requireKeys(d, []string{"Rails", "System", "Objs"}, "Stage"); err != nil {
		return nil, err
	}
	s := &Stage{}

	railsNode, _ := d.Get("Rails")
	railsArr, err := asArray(railsNode, "Stage.Rails")
	if err != nil {
		return nil, err
	}
	s.Rails = make([]Rail, len(railsArr))
	for i, e := range railsArr {
		if s.Rails[i], err = railFromNode(e); err != nil {
			return nil, err
		}
	}

	systemNode, _ := d.Get("System")
	systemArr, err := asArray(systemNode, "Stage.System")
	if err != nil {
		return nil, err
	}
	s.System = make([]Obj, len(systemArr))
	for i, e := range systemArr {
		if s.System[i], err = objFromNode(e); err != nil {
			return nil, err
		}
	}

	objsNode, _ := d.Get("Objs")
	objsArr, err := asArray(objsNode, "Stage.Objs")
	if err != nil {
		return nil, err
	}
	s.Objs = make([]Obj, len(objsArr))
	for i, e := range objsArr {
		if s.Objs[i], err = objFromNode(e); err != nil {
			return nil, err
		}
	}

	return s, nil
}
