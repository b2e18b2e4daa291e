package mathutil

import "github.com/chewxy/math32"

// Quat represents a quaternion (x, y, z, w); w is the scalar part.
type Quat [4]float32

func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatMul returns the Hamilton product a·b. Applied to a vector, b rotates
// first and a second.
func QuatMul(a, b Quat) Quat {
	ax, ay, az, aw := a[0], a[1], a[2], a[3]
	bx, by, bz, bw := b[0], b[1], b[2], b[3]

	return Quat{
		ax*bw + aw*bx + ay*bz - az*by,
		ay*bw + aw*by + az*bx - ax*bz,
		az*bw + aw*bz + ax*by - ay*bx,
		aw*bw - ax*bx - ay*by - az*bz,
	}
}

func (q Quat) Dot(p Quat) float32 {
	return q[0]*p[0] + q[1]*p[1] + q[2]*p[2] + q[3]*p[3]
}

func (q Quat) Len() float32 {
	return math32.Sqrt(q.Dot(q))
}

// Normalize returns the unit quaternion, or the identity when |q| < Epsilon.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l < Epsilon {
		return QuatIdentity()
	}
	inv := 1 / l
	return Quat{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

func (q Quat) Conjugate() Quat {
	return Quat{-q[0], -q[1], -q[2], q[3]}
}

// Mat4 converts a unit quaternion to a rotation matrix.
func (q Quat) Mat4() Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}

// Right, Up and Look are the local +X, +Y and +Z axes expressed in world
// space (columns 0, 1 and 2 of Mat4).
func (q Quat) Right() Vec3 {
	m := q.Mat4()
	return Vec3{m[0], m[1], m[2]}
}

func (q Quat) Up() Vec3 {
	m := q.Mat4()
	return Vec3{m[4], m[5], m[6]}
}

func (q Quat) Look() Vec3 {
	m := q.Mat4()
	return Vec3{m[8], m[9], m[10]}
}

// RotateVec3 rotates v by q.
func (q Quat) RotateVec3(v Vec3) Vec3 {
	return q.Mat4().MulDir(v)
}

// QuatFromAxisAngle builds the rotation by angle (radians) about axis. The
// axis is normalized; an axis shorter than Epsilon yields the identity.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	l := axis.Len()
	if l < Epsilon {
		return QuatIdentity()
	}
	half := angle * 0.5
	s := math32.Sin(half) / l

	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, math32.Cos(half)}
}

// QuatFromEuler converts Euler angles (radians) to a quaternion: rotation by
// pitch about X, then yaw about Y, then roll about Z, all about world axes.
func QuatFromEuler(pitch, yaw, roll float32) Quat {
	cx, sx := math32.Cos(pitch*0.5), math32.Sin(pitch*0.5)
	cy, sy := math32.Cos(yaw*0.5), math32.Sin(yaw*0.5)
	cz, sz := math32.Cos(roll*0.5), math32.Sin(roll*0.5)

	return Quat{
		sx*cy*cz - cx*sy*sz, // x
		cx*sy*cz + sx*cy*sz, // y
		cx*cy*sz - sx*sy*cz, // z
		cx*cy*cz + sx*sy*sz, // w
	}
}

// QuatSlerp interpolates along the shorter arc from a to b. t is not clamped;
// values outside [0,1] extrapolate. Nearly parallel inputs fall back to
// component-wise linear interpolation.
func QuatSlerp(a, b Quat, t float32) Quat {
	dot := a.Dot(b)
	if dot < 0 {
		b = Quat{-b[0], -b[1], -b[2], -b[3]}
		dot = -dot
	}

	var s0, s1 float32
	if dot > slerpLinearThreshold {
		s0, s1 = 1-t, t
	} else {
		theta := math32.Acos(dot)
		sinTheta := math32.Sin(theta)
		s0 = math32.Sin((1-t)*theta) / sinTheta
		s1 = math32.Sin(t*theta) / sinTheta
	}

	return Quat{
		s0*a[0] + s1*b[0],
		s0*a[1] + s1*b[1],
		s0*a[2] + s1*b[2],
		s0*a[3] + s1*b[3],
	}
}
