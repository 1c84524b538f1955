package client

import "fmt"

// Action is a _NET_WM_ALLOWED_ACTIONS entry of a client.
//
// https://specifications.freedesktop.org/wm-spec/wm-spec-1.3.html#idm46201142837824
type Action int

const (
	ActionMove Action = iota
	ActionResize
	ActionMinimize
	ActionShade
	ActionStick
	ActionMaximizeHorz
	ActionMaximizeVert
	ActionFullscreen
	ActionChangeDesktop
	ActionClose
	ActionAbove
	ActionBelow
)

var Actions = []Action{
	ActionMove,
	ActionResize,
	ActionMinimize,
	ActionShade,
	ActionStick,
	ActionMaximizeHorz,
	ActionMaximizeVert,
	ActionFullscreen,
	ActionChangeDesktop,
	ActionClose,
	ActionAbove,
	ActionBelow,
}

func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionResize:
		return "resize"
	case ActionMinimize:
		return "minimize"
	case ActionShade:
		return "shade"
	case ActionStick:
		return "stick"
	case ActionMaximizeHorz:
		return "maximize-horz"
	case ActionMaximizeVert:
		return "maximize-vert"
	case ActionFullscreen:
		return "fullscreen"
	case ActionChangeDesktop:
		return "change-desktop"
	case ActionClose:
		return "close"
	case ActionAbove:
		return "above"
	case ActionBelow:
		return "below"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

func (a Action) Atom() string {
	switch a {
	case ActionMove:
		return "_NET_WM_ACTION_MOVE"
	case ActionResize:
		return "_NET_WM_ACTION_RESIZE"
	case ActionMinimize:
		return "_NET_WM_ACTION_MINIMIZE"
	case ActionShade:
		return "_NET_WM_ACTION_SHADE"
	case ActionStick:
		return "_NET_WM_ACTION_STICK"
	case ActionMaximizeHorz:
		return "_NET_WM_ACTION_MAXIMIZE_HORZ"
	case ActionMaximizeVert:
		return "_NET_WM_ACTION_MAXIMIZE_VERT"
	case ActionFullscreen:
		return "_NET_WM_ACTION_FULLSCREEN"
	case ActionChangeDesktop:
		return "_NET_WM_ACTION_CHANGE_DESKTOP"
	case ActionClose:
		return "_NET_WM_ACTION_CLOSE"
	case ActionAbove:
		return "_NET_WM_ACTION_ABOVE"
	case ActionBelow:
		return "_NET_WM_ACTION_BELOW"
	default:
		return ""
	}
}

func ParseAction(atom string) (Action, error) {
	for _, a := range Actions {
		if a.Atom() == atom {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%s: unknown action atom", atom)
}
