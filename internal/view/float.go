package view

import "math"

func u32ToFloat32(u uint32) float32 { return math.Float32frombits(u) }

func float32ToU32(f float32) uint32 { return math.Float32bits(f) }
