// Package input defines the abstract per-frame input snapshot the motion integrator
// consumes, and the device-independent bindings that produce it.
//
// Devices are never referenced here: adapters translate their own events into key
// names ("w", "up", "pgdn") and the Keymap resolves names to actions.
package input

import (
	"fmt"
	"strings"
)

// Action is a single movement or look intent
type Action uint16

const (
	Forward Action = 1 << iota
	Backward
	StrafeLeft
	StrafeRight
	TurnLeft
	TurnRight
	LookUp
	LookDown
)

// Actions is the set of intents active for one frame
type Actions uint16

// None is the empty snapshot
const None Actions = 0

var actionNames = []struct {
	action Action
	name   string
}{
	{Forward, "forward"},
	{Backward, "backward"},
	{StrafeLeft, "strafe_left"},
	{StrafeRight, "strafe_right"},
	{TurnLeft, "turn_left"},
	{TurnRight, "turn_right"},
	{LookUp, "look_up"},
	{LookDown, "look_down"},
}

// String returns the binding name of a single action
func (a Action) String() string {
	for _, n := range actionNames {
		if n.action == a {
			return n.name
		}
	}
	return fmt.Sprintf("action(%d)", uint16(a))
}

// ParseAction resolves a binding name, case and surrounding space insensitive
// Dashes are accepted in place of underscores
func ParseAction(name string) (Action, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, n := range actionNames {
		if n.name == key {
			return n.action, nil
		}
	}
	return 0, fmt.Errorf("unknown action: %q", name)
}

// Of builds a snapshot from individual actions
func Of(actions ...Action) Actions {
	var s Actions
	for _, a := range actions {
		s |= Actions(a)
	}
	return s
}

// Has reports whether a is active
func (s Actions) Has(a Action) bool { return s&Actions(a) != 0 }

// With returns the set plus a
func (s Actions) With(a Action) Actions { return s | Actions(a) }

// Without returns the set minus a
func (s Actions) Without(a Action) Actions { return s &^ Actions(a) }

// Axis folds an opposing pair into -1, 0, +1
// Both set cancel out to 0, this is the only conflict rule for every pair
func (s Actions) Axis(pos, neg Action) int {
	v := 0
	if s.Has(pos) {
		v++
	}
	if s.Has(neg) {
		v--
	}
	return v
}

// String lists active action names joined by '+'
func (s Actions) String() string {
	if s == None {
		return "none"
	}
	parts := make([]string, 0, len(actionNames))
	for _, n := range actionNames {
		if s.Has(n.action) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}
