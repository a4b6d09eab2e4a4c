package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector in arena units
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{x, y}
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LenSq returns squared magnitude without sqrt
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	mag := v.Len()
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports whether neither component is NaN or Inf
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Angle returns the heading of v in radians, atan2 convention
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Distance returns euclidean distance between two points
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// DistanceSq returns squared distance between two points
func DistanceSq(a, b Vec2) float64 {
	return b.Sub(a).LenSq()
}

// Bearing returns the heading from a toward b in radians
func Bearing(a, b Vec2) float64 {
	return b.Sub(a).Angle()
}

// FromAngle returns a vector of length mag at heading rad
func FromAngle(rad, mag float64) Vec2 {
	return Vec2{math.Cos(rad) * mag, math.Sin(rad) * mag}
}

// DirectionTo returns the unit vector from a toward b, zero when coincident
func DirectionTo(a, b Vec2) Vec2 {
	return b.Sub(a).Normalize()
}

// Clamp limits p to the rectangle [0,w]x[0,h]
func Clamp(p Vec2, w, h float64) Vec2 {
	return Vec2{
		X: math.Max(0, math.Min(w, p.X)),
		Y: math.Max(0, math.Min(h, p.Y)),
	}
}

// SegmentDistance returns the distance from p to the segment a-b
func SegmentDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	denom := ab.LenSq()
	if denom == 0 {
		return Distance(p, a)
	}
	t := p.Sub(a).Dot(ab) / denom
	t = math.Max(0, math.Min(1, t))
	return Distance(p, a.Add(ab.Scale(t)))
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
