package math

import "math"

// Vec2 is a 2D vector. Line vertices use it for strip UV coordinates.
type Vec2 struct {
	X, Y float32
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// U returns the along-line coordinate of a strip UV.
func (v Vec2) U() float32 { return v.X }

// V returns the across-strip coordinate of a strip UV.
func (v Vec2) V() float32 { return v.Y }
