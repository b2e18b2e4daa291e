package control

import (
	"fmt"
	"strings"
)

// Action is a camera command a key can be bound to.
type Action int

const (
	ActionNone Action = iota
	ActionFront
	ActionBack
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionTurnLeft
	ActionTurnRight
)

var actionNames = map[Action]string{
	ActionFront:     "front",
	ActionBack:      "back",
	ActionLeft:      "left",
	ActionRight:     "right",
	ActionUp:        "up",
	ActionDown:      "down",
	ActionTurnLeft:  "turn_left",
	ActionTurnRight: "turn_right",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "none"
}

// ParseAction maps an action name ("front", "turn_left", ...) to its Action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("control: unknown action %q", name)
}

// Keymap binds lower-case key names to actions. Several keys may share an action.
type Keymap map[string]Action

// DefaultKeymap is WASD plus arrows for planar movement, r/f for vertical
// movement and q/e for turning in place.
func DefaultKeymap() Keymap {
	return Keymap{
		"w":          ActionFront,
		"arrowup":    ActionFront,
		"a":          ActionLeft,
		"arrowleft":  ActionLeft,
		"s":          ActionBack,
		"arrowdown":  ActionBack,
		"d":          ActionRight,
		"arrowright": ActionRight,
		"r":          ActionUp,
		"f":          ActionDown,
		"q":          ActionTurnLeft,
		"e":          ActionTurnRight,
	}
}

// Lookup resolves a key name case-insensitively.
func (k Keymap) Lookup(key string) (Action, bool) {
	a, ok := k[strings.ToLower(key)]
	return a, ok && a != ActionNone
}

// Bind adds or replaces a binding. Binding ActionNone removes the key.
func (k Keymap) Bind(key string, a Action) {
	key = strings.ToLower(key)
	if a == ActionNone {
		delete(k, key)
		return
	}
	k[key] = a
}
