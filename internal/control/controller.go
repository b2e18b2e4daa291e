package control

import "strings"

// State is one frame's worth of input as seen by the camera. It is a plain
// value: the frame driver owns the Controller and hands out snapshots.
type State struct {
	Front, Back bool
	Left, Right bool
	Up, Down    bool

	TurnLeft, TurnRight bool

	// Pointer movement in pixels accumulated since the previous snapshot.
	PointerDX, PointerDY float32
}

// Moving reports whether any translation flag is set.
func (s State) Moving() bool {
	return s.Front || s.Back || s.Left || s.Right || s.Up || s.Down
}

// Controller turns raw key and pointer events into State snapshots.
// It is owned by a single frame loop and is not safe for concurrent use.
type Controller struct {
	keymap Keymap
	held   map[string]bool

	dx, dy float32
}

// NewController returns a controller using km, or DefaultKeymap when km is nil.
func NewController(km Keymap) *Controller {
	if km == nil {
		km = DefaultKeymap()
	}
	return &Controller{
		keymap: km,
		held:   make(map[string]bool),
	}
}

func (c *Controller) Keymap() Keymap {
	return c.keymap
}

// KeyDown marks key as held. It reports whether the key is bound.
func (c *Controller) KeyDown(key string) bool {
	return c.SetKey(key, true)
}

// KeyUp releases key. It reports whether the key is bound.
func (c *Controller) KeyUp(key string) bool {
	return c.SetKey(key, false)
}

// SetKey records the pressed state of key; unbound keys are ignored.
func (c *Controller) SetKey(key string, down bool) bool {
	key = strings.ToLower(key)
	if _, ok := c.keymap.Lookup(key); !ok {
		return false
	}
	if down {
		c.held[key] = true
	} else {
		delete(c.held, key)
	}
	return true
}

// ReleaseAll drops every held key, e.g. when the window loses focus.
func (c *Controller) ReleaseAll() {
	clear(c.held)
}

// PointerMove accumulates pointer movement until the next Snapshot.
func (c *Controller) PointerMove(dx, dy float32) {
	c.dx += dx
	c.dy += dy
}

// Snapshot returns the current input state and resets the pointer deltas.
func (c *Controller) Snapshot() State {
	s := State{PointerDX: c.dx, PointerDY: c.dy}
	c.dx, c.dy = 0, 0

	for key := range c.held {
		a, _ := c.keymap.Lookup(key)
		switch a {
		case ActionFront:
			s.Front = true
		case ActionBack:
			s.Back = true
		case ActionLeft:
			s.Left = true
		case ActionRight:
			s.Right = true
		case ActionUp:
			s.Up = true
		case ActionDown:
			s.Down = true
		case ActionTurnLeft:
			s.TurnLeft = true
		case ActionTurnRight:
			s.TurnRight = true
		}
	}
	return s
}
