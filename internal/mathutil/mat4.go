package mathutil

import "github.com/chewxy/math32"

// Mat4 is a 4×4 matrix stored column-major: element (row r, col c) lives at
// c*4+r, so the translation of an affine transform sits at indices 12, 13, 14.
// This is the layout GL uniforms expect.
//
// Composition convention: every operator right-multiplies the new elementary
// transform (Translate(m, t) = m·T(t)). When the finished chain is applied to a
// vector, the operation appended last acts first.
type Mat4 [16]float32

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 {
	return m[c*4+r]
}

// Mat4Mul returns a·b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			m[c*4+r] = a[0*4+r]*b[c*4+0] + a[1*4+r]*b[c*4+1] +
				a[2*4+r]*b[c*4+2] + a[3*4+r]*b[c*4+3]
		}
	}
	return m
}

// Apply returns m·v. The caller picks w: 1 for points, 0 for directions.
func (m Mat4) Apply(v Vec4) Vec4 {
	return Vec4{
		v[0]*m[0] + v[1]*m[4] + v[2]*m[8] + v[3]*m[12],
		v[0]*m[1] + v[1]*m[5] + v[2]*m[9] + v[3]*m[13],
		v[0]*m[2] + v[1]*m[6] + v[2]*m[10] + v[3]*m[14],
		v[0]*m[3] + v[1]*m[7] + v[2]*m[11] + v[3]*m[15],
	}
}

// MulPoint transforms a 3D point (w=1) and drops w without dividing.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.Apply(v.Vec4(1)).Vec3()
}

// MulDir transforms a direction (w=0); translation does not apply.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return m.Apply(v.Vec4(0)).Vec3()
}

// Translation returns a pure translation matrix.
func Translation(t Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		t[0], t[1], t[2], 1,
	}
}

// Scaling returns a pure scale matrix.
func Scaling(s Vec3) Mat4 {
	return Mat4{
		s[0], 0, 0, 0,
		0, s[1], 0, 0,
		0, 0, s[2], 0,
		0, 0, 0, 1,
	}
}

// Translate returns m·T(t).
func Translate(m Mat4, t Vec3) Mat4 {
	return Mat4Mul(m, Translation(t))
}

// Scale returns m·S(s).
func Scale(m Mat4, s Vec3) Mat4 {
	return Mat4Mul(m, Scaling(s))
}

// Rotate returns m·R(axis, angle). The axis is normalized first; an axis
// shorter than Epsilon leaves m unchanged.
func Rotate(m Mat4, axis Vec3, angle float32) Mat4 {
	return Mat4Mul(m, RotationAxis(axis, angle))
}

// Perspective builds a right-handed projection mapping the view frustum to
// GL clip space. yFov is the vertical field of view in degrees.
func Perspective(yFov, aspect, zNear, zFar float32) (Mat4, error) {
	if aspect == 0 || zNear == zFar {
		return Mat4{}, ErrDegenerateProjection
	}
	f := math32.Tan(0.5 * (math32.Pi - Deg2Rad(yFov)))
	rInv := 1 / (zNear - zFar)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (zNear + zFar) * rInv, -1,
		0, 0, 2 * zNear * zFar * rInv, 0,
	}, nil
}

// Orthographic maps [0,width]×[0,height]×[0,depth] into clip space with y
// pointing down, so pixel coordinates can be used directly.
func Orthographic(width, height, depth float32) Mat4 {
	return Mat4{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 2 / depth, 0,
		-1, 1, 0, 1,
	}
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// cofactors holds the 2×2 sub-determinants shared by Det and Inverse.
type cofactors struct {
	b00, b01, b02, b03, b04, b05 float32
	b06, b07, b08, b09, b10, b11 float32
}

func (m Mat4) cofactors() cofactors {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	return cofactors{
		b00: a00*a11 - a01*a10,
		b01: a00*a12 - a02*a10,
		b02: a00*a13 - a03*a10,
		b03: a01*a12 - a02*a11,
		b04: a01*a13 - a03*a11,
		b05: a02*a13 - a03*a12,
		b06: a20*a31 - a21*a30,
		b07: a20*a32 - a22*a30,
		b08: a20*a33 - a23*a30,
		b09: a21*a32 - a22*a31,
		b10: a21*a33 - a23*a31,
		b11: a22*a33 - a23*a32,
	}
}

func (c cofactors) det() float32 {
	return c.b00*c.b11 - c.b01*c.b10 + c.b02*c.b09 + c.b03*c.b08 - c.b04*c.b07 + c.b05*c.b06
}

func (m Mat4) Det() float32 {
	return m.cofactors().det()
}

// Inverse returns m⁻¹ by cofactor expansion. It fails with ErrSingularMatrix
// when |det| < Epsilon, or when det is NaN/Inf.
func Inverse(m Mat4) (Mat4, error) {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	c := m.cofactors()
	det := c.det()
	if !finite(det) || math32.Abs(det) < Epsilon {
		return Mat4{}, ErrSingularMatrix
	}
	inv := 1 / det

	return Mat4{
		(a11*c.b11 - a12*c.b10 + a13*c.b09) * inv,
		(a02*c.b10 - a01*c.b11 - a03*c.b09) * inv,
		(a31*c.b05 - a32*c.b04 + a33*c.b03) * inv,
		(a22*c.b04 - a21*c.b05 - a23*c.b03) * inv,

		(a12*c.b08 - a10*c.b11 - a13*c.b07) * inv,
		(a00*c.b11 - a02*c.b08 + a03*c.b07) * inv,
		(a32*c.b02 - a30*c.b05 - a33*c.b01) * inv,
		(a20*c.b05 - a22*c.b02 + a23*c.b01) * inv,

		(a10*c.b10 - a11*c.b08 + a13*c.b06) * inv,
		(a01*c.b08 - a00*c.b10 - a03*c.b06) * inv,
		(a30*c.b04 - a31*c.b02 + a33*c.b00) * inv,
		(a21*c.b02 - a20*c.b04 - a23*c.b00) * inv,

		(a11*c.b07 - a10*c.b09 - a12*c.b06) * inv,
		(a00*c.b09 - a01*c.b07 + a02*c.b06) * inv,
		(a31*c.b01 - a30*c.b03 - a32*c.b00) * inv,
		(a20*c.b03 - a21*c.b01 + a22*c.b00) * inv,
	}, nil
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	return m.ApproxEqual(Mat4Identity(), 1e-6)
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(n Mat4, eps float32) bool {
	for i := 0; i < 16; i++ {
		if math32.Abs(m[i]-n[i]) > eps {
			return false
		}
	}
	return true
}

// IsFinite reports whether no element is NaN or ±Inf.
func (m Mat4) IsFinite() bool {
	for _, v := range m {
		if !finite(v) {
			return false
		}
	}
	return true
}
