package vmath

import "math"

// Quat is a unit quaternion describing an orientation.
type Quat struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Identity is the no-rotation quaternion.
var Identity = Quat{W: 1}

// FromAxisAngle builds a rotation of angle radians around axis.
func FromAxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	s := math.Sin(angle / 2)

	return Quat{X: a.X * s, Y: a.Y * s, Z: a.Z * s, W: math.Cos(angle / 2)}
}

// Mul returns q*o, i.e. o applied first and q second.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l < Epsilon {
		return Identity
	}

	return Quat{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)

	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// ApproxEqual treats q and -q as the same orientation.
func (q Quat) ApproxEqual(o Quat, tol float64) bool {
	d := q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
	return math.Abs(math.Abs(d)-1) <= tol
}

// LookAt returns the orientation whose +Z axis points from eye toward target,
// keeping +Y as close to up as possible. This is the convention used for
// non-camera objects, so a tile built in its XY plane faces the target.
func LookAt(eye, target, up Vec3) Quat {
	z := target.Sub(eye).Normalize()
	if z == (Vec3{}) {
		return Identity
	}

	x := up.Cross(z)
	if x.Len() < Epsilon {
		// looking straight along up; pick any perpendicular
		x = UnitX.Cross(z)
		if x.Len() < Epsilon {
			x = UnitY.Cross(z)
		}
	}
	x = x.Normalize()
	y := z.Cross(x)

	return fromBasis(x, y, z)
}

// fromBasis converts the rotation matrix with columns x, y, z to a quaternion.
func fromBasis(x, y, z Vec3) Quat {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	trace := m00 + m11 + m22

	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quat{W: 0.25 / s, X: (m21 - m12) * s, Y: (m02 - m20) * s, Z: (m10 - m01) * s}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = Quat{W: (m21 - m12) / s, X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = Quat{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = Quat{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s}
	}

	return q.Normalize()
}
