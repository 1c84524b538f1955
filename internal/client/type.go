package client

import "fmt"

// Type is the _NET_WM_WINDOW_TYPE of a client.
type Type int

const (
	TypeNormal Type = iota
	TypeDesktop
	TypeDock
	TypeToolbar
	TypeMenu
	TypeUtility
	TypeSplash
	TypeDialog
	TypeDropdownMenu
	TypePopupMenu
	TypeTooltip
	TypeNotification
	TypeCombo
	TypeDND
)

func (t Type) String() string {
	switch t {
	case TypeNormal:
		return "normal"
	case TypeDesktop:
		return "desktop"
	case TypeDock:
		return "dock"
	case TypeToolbar:
		return "toolbar"
	case TypeMenu:
		return "menu"
	case TypeUtility:
		return "utility"
	case TypeSplash:
		return "splash"
	case TypeDialog:
		return "dialog"
	case TypeDropdownMenu:
		return "dropdown-menu"
	case TypePopupMenu:
		return "popup-menu"
	case TypeTooltip:
		return "tooltip"
	case TypeNotification:
		return "notification"
	case TypeCombo:
		return "combo"
	case TypeDND:
		return "dnd"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

func (t Type) Atom() string {
	switch t {
	case TypeNormal:
		return "_NET_WM_WINDOW_TYPE_NORMAL"
	case TypeDesktop:
		return "_NET_WM_WINDOW_TYPE_DESKTOP"
	case TypeDock:
		return "_NET_WM_WINDOW_TYPE_DOCK"
	case TypeToolbar:
		return "_NET_WM_WINDOW_TYPE_TOOLBAR"
	case TypeMenu:
		return "_NET_WM_WINDOW_TYPE_MENU"
	case TypeUtility:
		return "_NET_WM_WINDOW_TYPE_UTILITY"
	case TypeSplash:
		return "_NET_WM_WINDOW_TYPE_SPLASH"
	case TypeDialog:
		return "_NET_WM_WINDOW_TYPE_DIALOG"
	case TypeDropdownMenu:
		return "_NET_WM_WINDOW_TYPE_DROPDOWN_MENU"
	case TypePopupMenu:
		return "_NET_WM_WINDOW_TYPE_POPUP_MENU"
	case TypeTooltip:
		return "_NET_WM_WINDOW_TYPE_TOOLTIP"
	case TypeNotification:
		return "_NET_WM_WINDOW_TYPE_NOTIFICATION"
	case TypeCombo:
		return "_NET_WM_WINDOW_TYPE_COMBO"
	case TypeDND:
		return "_NET_WM_WINDOW_TYPE_DND"
	default:
		return ""
	}
}

// Managed reports whether windows of this type are placed by the window
// manager by default.
func (t Type) Managed() bool {
	switch t {
	case TypeNormal, TypeToolbar, TypeUtility, TypeSplash, TypeDialog:
		return true
	case TypeDesktop, TypeDock, TypeMenu, TypeDropdownMenu, TypePopupMenu,
		TypeTooltip, TypeNotification, TypeCombo, TypeDND:
		return false
	default:
		return false
	}
}

func ParseType(atom string) (Type, error) {
	for t := TypeNormal; t <= TypeDND; t++ {
		if t.Atom() == atom {
			return t, nil
		}
	}
	return TypeNormal, fmt.Errorf("%s: unknown window type atom", atom)
}
