package mathutil

// Chain accumulates a transform through chained calls:
//
//	m, err := NewChain().Translate(pos).RotateQuat(q).Scale(size).Mat4()
//
// It owns a single accumulator; every step composes a freshly built operand
// into it, so the value handed to From is never aliased. The first failing
// step is recorded and the remaining steps are skipped.
type Chain struct {
	m   Mat4
	err error
}

// NewChain starts a chain at the identity.
func NewChain() *Chain {
	return &Chain{m: Mat4Identity()}
}

// Identity resets the accumulator and clears any recorded error.
func (c *Chain) Identity() *Chain {
	c.m = Mat4Identity()
	c.err = nil
	return c
}

// From replaces the accumulator with a copy of m.
func (c *Chain) From(m Mat4) *Chain {
	if c.err == nil {
		c.m = m
	}
	return c
}

func (c *Chain) Translate(t Vec3) *Chain {
	if c.err == nil {
		c.m = Translate(c.m, t)
	}
	return c
}

func (c *Chain) Scale(s Vec3) *Chain {
	if c.err == nil {
		c.m = Scale(c.m, s)
	}
	return c
}

func (c *Chain) Rotate(axis Vec3, angle float32) *Chain {
	if c.err == nil {
		c.m = Rotate(c.m, axis, angle)
	}
	return c
}

func (c *Chain) RotateQuat(q Quat) *Chain {
	if c.err == nil {
		c.m = Mat4Mul(c.m, q.Mat4())
	}
	return c
}

// Mul right-multiplies the accumulator by m.
func (c *Chain) Mul(m Mat4) *Chain {
	if c.err == nil {
		c.m = Mat4Mul(c.m, m)
	}
	return c
}

// Premul left-multiplies the accumulator by m, e.g. to prepend a projection.
func (c *Chain) Premul(m Mat4) *Chain {
	if c.err == nil {
		c.m = Mat4Mul(m, c.m)
	}
	return c
}

func (c *Chain) Inverse() *Chain {
	if c.err == nil {
		c.m, c.err = Inverse(c.m)
	}
	return c
}

// Mat4 returns the accumulated matrix, or the first error recorded.
func (c *Chain) Mat4() (Mat4, error) {
	if c.err != nil {
		return Mat4{}, c.err
	}
	return c.m, nil
}

// Err returns the first error recorded by the chain.
func (c *Chain) Err() error {
	return c.err
}
