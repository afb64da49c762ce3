// Package input turns raw key state into semantic actions and per-frame
// gameplay input. States never look at keys directly; they receive actions
// routed for their context, which keeps bindings in one place and makes
// replays independent of the physical keyboard.
package input

import "fmt"

// Action is a semantic input event dispatched to the active state.
type Action string

const (
	ActionMenuUp            Action = "menu_up"
	ActionMenuDown          Action = "menu_down"
	ActionMenuSelect        Action = "menu_select"
	ActionMenuBack          Action = "menu_back"
	ActionMenuQuit          Action = "menu_quit"
	ActionOptionsLeft       Action = "options_left"
	ActionOptionsRight      Action = "options_right"
	ActionAccessoriesSwitch Action = "accessories_switch"
	ActionPauseToggle       Action = "pause_toggle"
	ActionPauseClose        Action = "pause_close"
	ActionPauseMenu         Action = "pause_menu"
	ActionRestart           Action = "restart"
)

// Frame is the gameplay input sampled for one simulation tick. It is what
// gets recorded into replays, so its serialized names are part of the
// replay format.
type Frame struct {
	Left  bool
	Right bool
	Jump  bool
	Dash  bool
	Shoot bool
}

// Empty reports whether no input is held this frame.
func (f Frame) Empty() bool {
	return f == Frame{}
}

// Strings returns the active inputs by name, in a fixed order.
func (f Frame) Strings() []string {
	var names []string
	if f.Left {
		names = append(names, "left")
	}
	if f.Right {
		names = append(names, "right")
	}
	if f.Jump {
		names = append(names, "jump")
	}
	if f.Dash {
		names = append(names, "dash")
	}
	if f.Shoot {
		names = append(names, "shoot")
	}
	return names
}

// FrameFromStrings rebuilds a frame from persisted input names.
func FrameFromStrings(names []string) (Frame, error) {
	var f Frame
	for _, n := range names {
		switch n {
		case "left":
			f.Left = true
		case "right":
			f.Right = true
		case "jump":
			f.Jump = true
		case "dash":
			f.Dash = true
		case "shoot":
			f.Shoot = true
		default:
			return Frame{}, fmt.Errorf("unknown input %q", n)
		}
	}
	return f, nil
}
