package scene

import (
	"testing"

	"lowres3d/internal/mathutil"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(20, 42)
	b := Generate(20, 42)
	if len(a.Billboards) != 20 {
		t.Fatalf("got %d billboards", len(a.Billboards))
	}
	for i := range a.Billboards {
		if a.Billboards[i] != b.Billboards[i] {
			t.Fatalf("billboard %d differs between runs", i)
		}
	}

	c := Generate(20, 43)
	same := true
	for i := range a.Billboards {
		if a.Billboards[i] != c.Billboards[i] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced the same scene")
	}
}

func TestGenerateBounds(t *testing.T) {
	for _, b := range Generate(500, 7).Billboards {
		p := b.Position
		if p[0] < -FieldHalfWidth || p[0] > FieldHalfWidth {
			t.Fatalf("x out of field: %v", p)
		}
		if p[2] < -FieldHalfDepth || p[2] > FieldHalfDepth {
			t.Fatalf("z out of field: %v", p)
		}
		if b.Drift < 0 || b.Drift > MaxDrift {
			t.Fatalf("drift out of range: %v", b.Drift)
		}
		if b.Color.A != 0xff {
			t.Fatalf("transparent billboard color %v", b.Color)
		}
	}
}

func TestModel(t *testing.T) {
	b := Billboard{Position: mathutil.Vec3{1, 2, 3}, Size: [2]float32{4, 5}}
	m := b.Model()

	got := m.MulPoint(mathutil.Vec3{1, 1, 0})
	if got != (mathutil.Vec3{5, 7, 3}) {
		t.Errorf("corner = %v", got)
	}
	got = m.MulPoint(mathutil.Vec3{-1, -1, 0})
	if got != (mathutil.Vec3{-3, -3, 3}) {
		t.Errorf("corner = %v", got)
	}
}

func TestAdvance(t *testing.T) {
	s := &Scene{Billboards: []Billboard{
		{Position: mathutil.Vec3{0, 0, 10}, Drift: 4},
		{Position: mathutil.Vec3{0, 0, 498}, Drift: 4},
	}}

	s.Advance(0.5)
	if z := s.Billboards[0].Position[2]; z != 12 {
		t.Errorf("z = %v, want 12", z)
	}
	if z := s.Billboards[1].Position[2]; z != 0 {
		t.Errorf("z = %v, want wrap to 0", z)
	}

	before := s.Clone()
	s.Advance(-1)
	s.Advance(0)
	for i := range s.Billboards {
		if s.Billboards[i] != before.Billboards[i] {
			t.Errorf("billboard %d moved on non-positive dt", i)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := Generate(3, 1)
	c := s.Clone()
	c.Billboards[0].Position[0] = 999
	if s.Billboards[0].Position[0] == 999 {
		t.Error("clone shares storage")
	}
}

func TestAtLeavesOriginal(t *testing.T) {
	s := &Scene{Billboards: []Billboard{{Position: mathutil.Vec3{0, 0, 1}, Drift: 2}}}
	later := s.At(1.5)
	if z := later.Billboards[0].Position[2]; z != 4 {
		t.Errorf("z = %v, want 4", z)
	}
	if z := s.Billboards[0].Position[2]; z != 1 {
		t.Errorf("original moved to %v", z)
	}
}
