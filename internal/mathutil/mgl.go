package mathutil

import "github.com/go-gl/mathgl/mgl32"

// mgl32 shares the column-major float32 layout, so matrices and vectors
// convert without reordering. GL-facing collaborators upload these directly.

func (m Mat4) MGL() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

func Mat4FromMGL(m mgl32.Mat4) Mat4 {
	return Mat4(m)
}

func (v Vec3) MGL() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

func (q Quat) MGL() mgl32.Quat {
	return mgl32.Quat{W: q[3], V: mgl32.Vec3{q[0], q[1], q[2]}}
}

func QuatFromMGL(q mgl32.Quat) Quat {
	return Quat{q.V[0], q.V[1], q.V[2], q.W}
}
