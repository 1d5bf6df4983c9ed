package vmath

import "math"

// Transform places an object in world space.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Quat `json:"rotation"`
}

// NewTransform is a transform at position with identity rotation.
func NewTransform(position Vec3) Transform {
	return Transform{Position: position, Rotation: Identity}
}

// Normal is the local +Z axis in world space.
func (t Transform) Normal() Vec3 {
	return t.Rotation.Rotate(UnitZ)
}

// ToLocal maps a world point into the transform's local frame.
func (t Transform) ToLocal(p Vec3) Vec3 {
	return t.Rotation.Conjugate().Rotate(p.Sub(t.Position))
}

// ToWorld maps a local point into world space.
func (t Transform) ToWorld(p Vec3) Vec3 {
	return t.Rotation.Rotate(p).Add(t.Position)
}

// Ray is a half-line from Origin along the unit Direction.
type Ray struct {
	Origin    Vec3 `json:"origin"`
	Direction Vec3 `json:"direction"`
}

// NewRay normalizes direction.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// GazeRay is the ray through the screen centre of a viewer at pose: it starts
// at the eye and follows the viewing direction (-Z rotated by the orientation).
func GazeRay(pose Transform) Ray {
	return NewRay(pose.Position, pose.Rotation.Rotate(Forward))
}

// Facing is the pose of a viewer at eye looking at target.
func Facing(eye, target Vec3) Transform {
	return Transform{Position: eye, Rotation: LookAt(target, eye, UnitY)}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectRect tests r against a double-sided rectangle of the given width and
// height lying in the local XY plane of t. It returns the ray parameter of the
// hit and whether the rectangle was hit in front of the origin.
func (r Ray) IntersectRect(t Transform, width, height float64) (float64, bool) {
	if r.Direction == (Vec3{}) {
		return 0, false
	}

	n := t.Normal()
	denom := n.Dot(r.Direction)
	if math.Abs(denom) < Epsilon {
		return 0, false
	}

	dist := n.Dot(t.Position.Sub(r.Origin)) / denom
	if dist < 0 {
		return 0, false
	}

	local := t.ToLocal(r.At(dist))
	if math.Abs(local.X) > width/2+Epsilon || math.Abs(local.Y) > height/2+Epsilon {
		return 0, false
	}

	return dist, true
}
