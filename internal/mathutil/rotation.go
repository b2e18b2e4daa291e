package mathutil

import "github.com/chewxy/math32"

// RotationAxis returns the rotation by angle (radians, counter-clockwise when
// looking down the axis) about axis. The axis is normalized first; an axis
// shorter than Epsilon yields the identity.
func RotationAxis(axis Vec3, angle float32) Mat4 {
	l := axis.Len()
	if l < Epsilon {
		return Mat4Identity()
	}
	x, y, z := axis[0]/l, axis[1]/l, axis[2]/l
	c, s := math32.Cos(angle), math32.Sin(angle)
	t := 1 - c

	return Mat4{
		x*x*t + c, x*y*t + z*s, x*z*t - y*s, 0,
		x*y*t - z*s, y*y*t + c, y*z*t + x*s, 0,
		x*z*t + y*s, y*z*t - x*s, z*z*t + c, 0,
		0, 0, 0, 1,
	}
}

// RotX returns a rotation about the X axis. Angle in radians.
func RotX(a float32) Mat4 {
	return RotationAxis(Vec3{1, 0, 0}, a)
}

// RotY returns a rotation about the Y axis.
func RotY(a float32) Mat4 {
	return RotationAxis(Vec3{0, 1, 0}, a)
}

// RotZ returns a rotation about the Z axis.
func RotZ(a float32) Mat4 {
	return RotationAxis(Vec3{0, 0, 1}, a)
}
