package xwm

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ItsNotGoodName/x-tilewm/internal/client"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Server is what the window manager needs from the X server.
type Server interface {
	client.Conn
	ConfigureWindow(wid xproto.Window, valueMask uint16, valueList []uint32)
	WMClass(wid xproto.Window) (string, error)
	WMPID(wid xproto.Window) (uint32, error)
	WindowType(wid xproto.Window) (client.Type, error)
	WMState(wid xproto.Window) ([]client.State, error)
}

var _ Server = (*Conn)(nil)

// Conn implements Server on top of a X connection.
//
// Requests are sent unchecked. Their errors are delivered by WaitForEvent
// and logged in ReceiveEvents.
type Conn struct {
	x *xgb.Conn

	mu    sync.Mutex
	atoms map[string]xproto.Atom
	names map[xproto.Atom]string
}

func NewConn(x *xgb.Conn) *Conn {
	return &Conn{
		x:     x,
		atoms: make(map[string]xproto.Atom),
		names: make(map[xproto.Atom]string),
	}
}

func (c *Conn) MapWindow(wid xproto.Window) {
	xproto.MapWindow(c.x, wid)
}

func (c *Conn) UnmapWindow(wid xproto.Window) {
	xproto.UnmapWindow(c.x, wid)
}

func (c *Conn) DestroyWindow(wid xproto.Window) {
	xproto.DestroyWindow(c.x, wid)
}

func (c *Conn) ChangeWindowAttributes(wid xproto.Window, valueMask uint32, valueList []uint32) {
	xproto.ChangeWindowAttributes(c.x, wid, valueMask, valueList)
}

func (c *Conn) SetInputFocus(revertTo byte, focus xproto.Window, time xproto.Timestamp) {
	xproto.SetInputFocus(c.x, revertTo, focus, time)
}

func (c *Conn) ConfigureWindow(wid xproto.Window, valueMask uint16, valueList []uint32) {
	xproto.ConfigureWindow(c.x, wid, valueMask, valueList)
}

// WMClass returns the class part of WM_CLASS.
func (c *Conn) WMClass(wid xproto.Window) (string, error) {
	reply, err := c.property(wid, xproto.AtomWmClass, xproto.AtomString)
	if err != nil {
		return "", err
	}

	// WM_CLASS is "instance\x00class\x00".
	parts := bytes.Split(bytes.TrimRight(reply.Value, "\x00"), []byte{0})
	if len(parts) < 2 {
		return "", fmt.Errorf("window %d: malformed WM_CLASS", wid)
	}

	return string(parts[1]), nil
}

func (c *Conn) WMPID(wid xproto.Window) (uint32, error) {
	atom, err := c.atom("_NET_WM_PID")
	if err != nil {
		return 0, err
	}

	reply, err := c.property(wid, atom, xproto.AtomCardinal)
	if err != nil {
		return 0, err
	}
	if reply.Format != 32 || len(reply.Value) < 4 {
		return 0, fmt.Errorf("window %d: malformed _NET_WM_PID", wid)
	}

	return xgb.Get32(reply.Value), nil
}

// WindowType returns the first known _NET_WM_WINDOW_TYPE.
func (c *Conn) WindowType(wid xproto.Window) (client.Type, error) {
	names, err := c.atomList(wid, "_NET_WM_WINDOW_TYPE")
	if err != nil {
		return client.TypeNormal, err
	}

	for _, name := range names {
		if t, err := client.ParseType(name); err == nil {
			return t, nil
		}
	}

	return client.TypeNormal, fmt.Errorf("window %d: no known window type", wid)
}

// WMState returns the known states of _NET_WM_STATE in property order.
func (c *Conn) WMState(wid xproto.Window) ([]client.State, error) {
	names, err := c.atomList(wid, "_NET_WM_STATE")
	if err != nil {
		return nil, err
	}

	states := make([]client.State, 0, len(names))
	for _, name := range names {
		if s, err := client.ParseState(name); err == nil {
			states = append(states, s)
		}
	}

	return states, nil
}

func (c *Conn) property(wid xproto.Window, property, typ xproto.Atom) (*xproto.GetPropertyReply, error) {
	reply, err := xproto.GetProperty(c.x, false, wid, property, typ, 0, 1024).Reply()
	if err != nil {
		return nil, err
	}
	if reply.ValueLen == 0 {
		return nil, fmt.Errorf("window %d: property %d not set", wid, property)
	}
	return reply, nil
}

func (c *Conn) atomList(wid xproto.Window, property string) ([]string, error) {
	atom, err := c.atom(property)
	if err != nil {
		return nil, err
	}

	reply, err := c.property(wid, atom, xproto.AtomAtom)
	if err != nil {
		return nil, err
	}
	if reply.Format != 32 {
		return nil, fmt.Errorf("window %d: malformed %s", wid, property)
	}

	names := make([]string, 0, len(reply.Value)/4)
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		name, err := c.atomName(xproto.Atom(xgb.Get32(reply.Value[i:])))
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, nil
}

func (c *Conn) atom(name string) (xproto.Atom, error) {
	c.mu.Lock()
	atom, ok := c.atoms[name]
	c.mu.Unlock()
	if ok {
		return atom, nil
	}

	reply, err := xproto.InternAtom(c.x, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}

	c.mu.Lock()
	c.atoms[name] = reply.Atom
	c.names[reply.Atom] = name
	c.mu.Unlock()

	return reply.Atom, nil
}

func (c *Conn) atomName(atom xproto.Atom) (string, error) {
	c.mu.Lock()
	name, ok := c.names[atom]
	c.mu.Unlock()
	if ok {
		return name, nil
	}

	reply, err := xproto.GetAtomName(c.x, atom).Reply()
	if err != nil {
		return "", fmt.Errorf("atom %d: %w", atom, err)
	}

	c.mu.Lock()
	c.atoms[reply.Name] = atom
	c.names[atom] = reply.Name
	c.mu.Unlock()

	return reply.Name, nil
}
