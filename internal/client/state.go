package client

import "fmt"

// State is a _NET_WM_STATE of a client.
//
// https://specifications.freedesktop.org/wm-spec/wm-spec-1.3.html#idm46201142858672
type State int

const (
	// StateTile means the client has no configured state. It is never stored
	// in a client's state stack.
	StateTile State = iota
	StateModal
	StateSticky
	StateMaximized
	StateShaded
	StateSkipTaskbar
	StateSkipPager
	StateHidden
	StateFullscreen
	StateAbove
	StateBelow
	StateDemandsAttention
)

// States lists every state except StateTile.
var States = []State{
	StateModal,
	StateSticky,
	StateMaximized,
	StateShaded,
	StateSkipTaskbar,
	StateSkipPager,
	StateHidden,
	StateFullscreen,
	StateAbove,
	StateBelow,
	StateDemandsAttention,
}

func (s State) String() string {
	switch s {
	case StateTile:
		return "tile"
	case StateModal:
		return "modal"
	case StateSticky:
		return "sticky"
	case StateMaximized:
		return "maximized"
	case StateShaded:
		return "shaded"
	case StateSkipTaskbar:
		return "skip-taskbar"
	case StateSkipPager:
		return "skip-pager"
	case StateHidden:
		return "hidden"
	case StateFullscreen:
		return "fullscreen"
	case StateAbove:
		return "above"
	case StateBelow:
		return "below"
	case StateDemandsAttention:
		return "demands-attention"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Atoms returns the atom names of the state. Maximized is split into its
// vertical and horizontal atoms. StateTile has no atoms.
func (s State) Atoms() []string {
	switch s {
	case StateModal:
		return []string{"_NET_WM_STATE_MODAL"}
	case StateSticky:
		return []string{"_NET_WM_STATE_STICKY"}
	case StateMaximized:
		return []string{"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ"}
	case StateShaded:
		return []string{"_NET_WM_STATE_SHADED"}
	case StateSkipTaskbar:
		return []string{"_NET_WM_STATE_SKIP_TASKBAR"}
	case StateSkipPager:
		return []string{"_NET_WM_STATE_SKIP_PAGER"}
	case StateHidden:
		return []string{"_NET_WM_STATE_HIDDEN"}
	case StateFullscreen:
		return []string{"_NET_WM_STATE_FULLSCREEN"}
	case StateAbove:
		return []string{"_NET_WM_STATE_ABOVE"}
	case StateBelow:
		return []string{"_NET_WM_STATE_BELOW"}
	case StateDemandsAttention:
		return []string{"_NET_WM_STATE_DEMANDS_ATTENTION"}
	default:
		return nil
	}
}

// ParseState maps a _NET_WM_STATE atom name to a State.
func ParseState(atom string) (State, error) {
	switch atom {
	case "_NET_WM_STATE_MODAL":
		return StateModal, nil
	case "_NET_WM_STATE_STICKY":
		return StateSticky, nil
	case "_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ":
		return StateMaximized, nil
	case "_NET_WM_STATE_SHADED":
		return StateShaded, nil
	case "_NET_WM_STATE_SKIP_TASKBAR":
		return StateSkipTaskbar, nil
	case "_NET_WM_STATE_SKIP_PAGER":
		return StateSkipPager, nil
	case "_NET_WM_STATE_HIDDEN":
		return StateHidden, nil
	case "_NET_WM_STATE_FULLSCREEN":
		return StateFullscreen, nil
	case "_NET_WM_STATE_ABOVE":
		return StateAbove, nil
	case "_NET_WM_STATE_BELOW":
		return StateBelow, nil
	case "_NET_WM_STATE_DEMANDS_ATTENTION":
		return StateDemandsAttention, nil
	default:
		return StateTile, fmt.Errorf("%s: unknown state atom", atom)
	}
}
