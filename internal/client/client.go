package client

import (
	"fmt"
	"slices"

	"github.com/jezek/xgb/xproto"
)

// Conn sends requests to the X server.
//
// Requests are unchecked. A failed request is reported by the X server
// asynchronously on the event stream and is never seen by the Client.
type Conn interface {
	MapWindow(wid xproto.Window)
	UnmapWindow(wid xproto.Window)
	DestroyWindow(wid xproto.Window)
	ChangeWindowAttributes(wid xproto.Window, valueMask uint32, valueList []uint32)
	SetInputFocus(revertTo byte, focus xproto.Window, time xproto.Timestamp)
}

type Padding struct {
	Top    uint16
	Bottom uint16
	Left   uint16
	Right  uint16
}

// Client is a window managed by the window manager.
type Client struct {
	// WID is the X window, typically the window of a MapRequest or
	// DestroyNotify event.
	WID xproto.Window
	// WMPID is the _NET_WM_PID of the client.
	WMPID *uint32
	// WMClass is the class name from WM_CLASS.
	WMClass *string
	Padding Padding

	controlled bool
	typ        Type

	// states holds the _NET_WM_STATE of the client without duplicates.
	// The last state has the highest priority, so [Fullscreen, Maximized]
	// draws as maximized and drops back to fullscreen once Maximized is
	// removed.
	states []State

	allowedActions []Action
}

func New(wid xproto.Window) *Client {
	return &Client{
		WID:        wid,
		controlled: true,
		typ:        TypeNormal,
	}
}

func (c *Client) String() string {
	return fmt.Sprintf("client.Client(wid=%d)", c.WID)
}

// IsControlled reports whether the window manager places this client.
func (c *Client) IsControlled() bool {
	return c.controlled
}

func (c *Client) SetControlled(controlled bool) {
	c.controlled = controlled
}

func (c *Client) Type() Type {
	return c.typ
}

func (c *Client) SetType(t Type) {
	c.typ = t
}

func (c *Client) SetWMPID(pid uint32) {
	c.WMPID = &pid
}

func (c *Client) SetWMClass(class string) {
	c.WMClass = &class
}

func (c *Client) Map(conn Conn) {
	conn.MapWindow(c.WID)
}

func (c *Client) Unmap(conn Conn) {
	conn.UnmapWindow(c.WID)
}

// Kill asks the X server to destroy the window. The client stays registered
// until the DestroyNotify arrives.
func (c *Client) Kill(conn Conn) {
	conn.DestroyWindow(c.WID)
}

func (c *Client) SetBorder(conn Conn, color uint32) {
	conn.ChangeWindowAttributes(c.WID, xproto.CwBorderPixel, []uint32{color})
}

func (c *Client) SetInputFocus(conn Conn) {
	conn.SetInputFocus(xproto.InputFocusParent, c.WID, xproto.TimeCurrentTime)
}

// EnableEventMask subscribes to property and structure notifications of the
// window.
func (c *Client) EnableEventMask(conn Conn) {
	conn.ChangeWindowAttributes(c.WID, xproto.CwEventMask, []uint32{
		xproto.EventMaskPropertyChange |
			xproto.EventMaskStructureNotify,
	})
}

// PushState puts the state on top of the stack. A state that is already
// present is moved to the top. StateTile is ignored.
func (c *Client) PushState(s State) {
	if s == StateTile {
		return
	}
	c.states = slices.DeleteFunc(c.states, func(x State) bool { return x == s })
	c.states = append(c.states, s)
}

func (c *Client) RemoveState(s State) {
	c.states = slices.DeleteFunc(c.states, func(x State) bool { return x == s })
}

func (c *Client) HasState(s State) bool {
	return slices.Contains(c.states, s)
}

// EffectiveState returns the highest priority state or StateTile when there
// is none.
func (c *Client) EffectiveState() State {
	if len(c.states) == 0 {
		return StateTile
	}
	return c.states[len(c.states)-1]
}

// States returns a copy of the state stack, lowest priority first.
func (c *Client) States() []State {
	return slices.Clone(c.states)
}

func (c *Client) AllowAction(a Action) {
	if c.IsActionAllowed(a) {
		return
	}
	c.allowedActions = append(c.allowedActions, a)
}

func (c *Client) DisallowAction(a Action) {
	c.allowedActions = slices.DeleteFunc(c.allowedActions, func(x Action) bool { return x == a })
}

func (c *Client) IsActionAllowed(a Action) bool {
	return slices.Contains(c.allowedActions, a)
}

func (c *Client) AllowedActions() []Action {
	return slices.Clone(c.allowedActions)
}
