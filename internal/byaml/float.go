package byaml

import "math"

func u32ToFloat32(bits uint32) float32 { return math.Float32frombits(bits) }
func float32ToU32(f float32) uint32    { return math.Float32bits(f) }
