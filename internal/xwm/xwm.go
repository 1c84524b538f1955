package xwm

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ItsNotGoodName/x-tilewm/internal/client"
	"github.com/ItsNotGoodName/x-tilewm/internal/config"
	"github.com/ItsNotGoodName/x-tilewm/internal/event"
	"github.com/ItsNotGoodName/x-tilewm/internal/lock"
	"github.com/ItsNotGoodName/x-tilewm/internal/procinfo"
	"github.com/ItsNotGoodName/x-tilewm/internal/session"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var ErrQuit = errors.New("quit")

const (
	// Pointer button bits are not part of a keybind.
	modifierMask = xproto.ModMaskShift | xproto.ModMaskLock | xproto.ModMaskControl |
		xproto.ModMask1 | xproto.ModMask2 | xproto.ModMask3 | xproto.ModMask4 | xproto.ModMask5
	// Lock and NumLock are ignored when matching keybinds.
	ignoredMods = xproto.ModMaskLock | xproto.ModMask2
)

type keyCombo struct {
	key  xproto.Keycode
	mods uint16
}

type entry struct {
	client *client.Client
	tag    session.TagID

	mapped bool
	// pendingUnmaps counts the UnmapNotify events caused by our own unmaps.
	pendingUnmaps int
}

func (e *entry) show(conn client.Conn) {
	e.client.Map(conn)
	e.mapped = true
}

func (e *entry) hide(conn client.Conn) {
	if !e.mapped {
		return
	}
	e.pendingUnmaps++
	e.mapped = false
	e.client.Unmap(conn)
}

// WM owns the client registry and dispatches X events.
// It is not safe for concurrent use.
type WM struct {
	server Server
	screen *lock.Mutex[session.Screen]
	border config.Border
	opts   []event.Option

	keybinds map[keyCombo]config.Keybind
	clients  map[xproto.Window]*entry
	order    []xproto.Window
	focused  xproto.Window
}

func NewWM(server Server, cfg config.Config, opts ...event.Option) (*WM, error) {
	keybinds := make(map[keyCombo]config.Keybind, len(cfg.Keybinds))
	for i, kb := range cfg.Keybinds {
		mods, err := kb.ModMask()
		if err != nil {
			return nil, fmt.Errorf("keybinds[%d]: %w", i, err)
		}
		keybinds[keyCombo{key: kb.Key, mods: mods}] = kb
	}

	return &WM{
		server:   server,
		screen:   lock.New(session.NewScreen(cfg.Tags...)),
		border:   cfg.Border,
		opts:     opts,
		keybinds: keybinds,
		clients:  make(map[xproto.Window]*entry),
	}, nil
}

// Screen returns the shared session.
func (w *WM) Screen() *lock.Mutex[session.Screen] {
	return w.screen
}

func (w *WM) Client(wid xproto.Window) (*client.Client, bool) {
	e, ok := w.clients[wid]
	if !ok {
		return nil, false
	}
	return e.client, true
}

// Focused returns the focused client.
func (w *WM) Focused() (*client.Client, bool) {
	return w.Client(w.focused)
}

// Autostart spawns each command. Failures are logged.
func (w *WM) Autostart(commands []string) error {
	ec, err := event.NewContext(w.server, w.screen, w.opts...)
	if err != nil {
		return err
	}

	for _, command := range commands {
		if err := ec.Spawn(command); err != nil {
			ec.Logger().Error("Failed to autostart", "command", command, "error", err)
		}
	}

	return nil
}

// Handle dispatches one X event. A returned error means the session can no
// longer be trusted and dispatching must stop.
func (w *WM) Handle(ctx context.Context, ev xgb.Event) error {
	ec, err := event.NewContext(w.server, w.screen, w.opts...)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			ec.Logger().Error("Panic while handling event", "x-event", ev.String(), "panic", r)
			panic(r)
		}
	}()

	switch ev := ev.(type) {
	case xproto.MapRequestEvent:
		w.manage(ctx, ec, ev.Window)
	case xproto.ConfigureRequestEvent:
		w.configure(ev)
	case xproto.DestroyNotifyEvent:
		w.unmanage(ec, ev.Window)
	case xproto.UnmapNotifyEvent:
		w.unmapNotify(ec, ev)
	case xproto.PropertyNotifyEvent:
		if e, ok := w.clients[ev.Window]; ok && ev.Atom == xproto.AtomWmClass {
			if class, err := w.server.WMClass(ev.Window); err == nil {
				e.client.SetWMClass(class)
			}
		}
	case xproto.KeyPressEvent:
		return w.keyPress(ec, ev)
	default:
		ec.Logger().Debug("Unhandled event", "x-event", ev.String())
	}

	return nil
}

func (w *WM) manage(ctx context.Context, ec *event.Context, wid xproto.Window) {
	e, ok := w.clients[wid]
	if !ok {
		c := client.New(wid)
		w.loadProperties(ctx, ec, c)

		e = &entry{client: c, tag: ec.CurrTagID()}
		w.clients[wid] = e
		w.order = append(w.order, wid)

		c.EnableEventMask(w.server)
		if c.IsControlled() {
			c.AllowAction(client.ActionMove)
			c.AllowAction(client.ActionResize)
			c.AllowAction(client.ActionFullscreen)
			c.AllowAction(client.ActionChangeDesktop)
			w.server.ConfigureWindow(wid, xproto.ConfigWindowBorderWidth, []uint32{w.border.Width})
			c.SetBorder(w.server, w.border.Normal)
		}
		c.AllowAction(client.ActionClose)
	}

	if e.client.IsControlled() && e.tag != ec.CurrTagID() && !e.client.HasState(client.StateSticky) {
		return
	}

	e.show(w.server)
	if e.client.IsControlled() {
		w.focus(e.client)
	}
}

func (w *WM) loadProperties(ctx context.Context, ec *event.Context, c *client.Client) {
	log := ec.Logger().With("wid", c.WID)

	if class, err := w.server.WMClass(c.WID); err == nil {
		c.SetWMClass(class)
	} else {
		log.Debug("No WM_CLASS", "error", err)
	}

	if typ, err := w.server.WindowType(c.WID); err == nil {
		c.SetType(typ)
		c.SetControlled(typ.Managed())
	}

	if states, err := w.server.WMState(c.WID); err == nil {
		for _, s := range states {
			c.PushState(s)
		}
	}

	if pid, err := w.server.WMPID(c.WID); err == nil {
		c.SetWMPID(pid)
		if proc, err := procinfo.Lookup(ctx, pid); err == nil {
			log = log.With("process", proc.Name, "cmdline", proc.Cmdline)
		}
	}

	log.Info("Managing client", "type", c.Type(), "controlled", c.IsControlled(), "state", c.EffectiveState())
}

// configure grants the request as is. Placement of controlled clients is
// left to the layout.
func (w *WM) configure(ev xproto.ConfigureRequestEvent) {
	var values []uint32
	if ev.ValueMask&xproto.ConfigWindowX != 0 {
		values = append(values, uint32(ev.X))
	}
	if ev.ValueMask&xproto.ConfigWindowY != 0 {
		values = append(values, uint32(ev.Y))
	}
	if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(ev.Width))
	}
	if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(ev.Height))
	}
	if ev.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(ev.BorderWidth))
	}
	if ev.ValueMask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(ev.Sibling))
	}
	if ev.ValueMask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(ev.StackMode))
	}

	w.server.ConfigureWindow(ev.Window, ev.ValueMask, values)
}

func (w *WM) unmanage(ec *event.Context, wid xproto.Window) {
	e, ok := w.clients[wid]
	if !ok {
		return
	}

	delete(w.clients, wid)
	w.order = slices.DeleteFunc(w.order, func(x xproto.Window) bool { return x == wid })
	ec.Logger().Info("Unmanaged client", "wid", wid)

	if w.focused == wid {
		w.focused = 0
		if next, ok := w.last(e.tag); ok {
			w.focus(next)
		}
	}
}

// unmapNotify forgets clients that unmapped themselves. Such a client is
// withdrawn and comes back with a new MapRequest.
func (w *WM) unmapNotify(ec *event.Context, ev xproto.UnmapNotifyEvent) {
	// The client's own StructureNotify copy; the root reports it too.
	if ev.Event == ev.Window {
		return
	}

	e, ok := w.clients[ev.Window]
	if !ok {
		return
	}

	if e.pendingUnmaps > 0 {
		e.pendingUnmaps--
		if w.focused == ev.Window {
			w.focused = 0
		}
		return
	}

	ec.Logger().Debug("Client withdrew", "wid", ev.Window)
	w.unmanage(ec, ev.Window)
}

func (w *WM) keyPress(ec *event.Context, ev xproto.KeyPressEvent) error {
	kb, ok := w.keybinds[keyCombo{key: ev.Detail, mods: ev.State & modifierMask &^ ignoredMods}]
	if !ok {
		return nil
	}

	log := ec.Logger().With("action", kb.Action)
	log.Debug("Keybind pressed", "key", kb.Key, "mods", kb.Mods)

	switch kb.Action {
	case config.ActionSpawn:
		if err := ec.Spawn(kb.Arg); err != nil {
			log.Error("Failed to spawn", "command", kb.Arg, "error", err)
		}
	case config.ActionKill:
		if c, ok := w.Focused(); ok && c.IsActionAllowed(client.ActionClose) {
			c.Kill(w.server)
		}
	case config.ActionTag:
		var tagID session.TagID
		err := w.screen.With(func(s *session.Screen) error {
			tag, err := s.TagByName(kb.Arg)
			if err != nil {
				return err
			}
			tagID = tag.ID
			return s.FocusTag(tag.ID)
		})
		if errors.Is(err, lock.ErrPoisoned) {
			return err
		}
		if err != nil {
			log.Error("Failed to focus tag", "tag", kb.Arg, "error", err)
			return nil
		}
		w.showTag(tagID)
	case config.ActionFocusNext:
		w.focusNext(ec.CurrTagID())
	case config.ActionQuit:
		return ErrQuit
	}

	return nil
}

// showTag maps the clients of the tag and unmaps the other controlled
// clients. Sticky clients stay mapped.
func (w *WM) showTag(id session.TagID) {
	for _, wid := range w.order {
		e := w.clients[wid]
		if !e.client.IsControlled() || e.client.HasState(client.StateSticky) {
			continue
		}
		if e.tag == id {
			e.show(w.server)
		} else {
			e.hide(w.server)
		}
	}

	if c, ok := w.Focused(); ok && w.clients[c.WID].tag == id {
		return
	}
	w.focused = 0
	if c, ok := w.last(id); ok {
		w.focus(c)
	}
}

func (w *WM) focusNext(id session.TagID) {
	var tagged []*client.Client
	for _, wid := range w.order {
		if e := w.clients[wid]; e.tag == id && e.client.IsControlled() {
			tagged = append(tagged, e.client)
		}
	}
	if len(tagged) == 0 {
		return
	}

	idx := slices.IndexFunc(tagged, func(c *client.Client) bool { return c.WID == w.focused })
	w.focus(tagged[(idx+1)%len(tagged)])
}

// last returns the most recently managed controlled client of the tag.
func (w *WM) last(id session.TagID) (*client.Client, bool) {
	for i := len(w.order) - 1; i >= 0; i-- {
		e := w.clients[w.order[i]]
		if e.tag == id && e.client.IsControlled() {
			return e.client, true
		}
	}
	return nil, false
}

func (w *WM) focus(c *client.Client) {
	if prev, ok := w.Focused(); ok && prev.WID != c.WID {
		prev.SetBorder(w.server, w.border.Normal)
	}

	c.SetBorder(w.server, w.border.Focused)
	c.SetInputFocus(w.server)
	w.focused = c.WID
}
