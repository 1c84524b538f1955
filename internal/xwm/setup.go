package xwm

import (
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/x-tilewm/internal/config"
	"github.com/ItsNotGoodName/x-tilewm/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Setup makes us the window manager of the default screen and grabs the
// keybinds on the root window.
func Setup(conn *xgb.Conn, cfg config.Config) (xproto.Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)

	cursor, err := xcursor.Create(conn, xcursor.LeftPtr)
	if err != nil {
		return 0, err
	}

	// Only one client may select SubstructureRedirect on the root.
	if err := xproto.ChangeWindowAttributesChecked(conn, screen.Root,
		xproto.CwEventMask|xproto.CwCursor, // 1, 2
		[]uint32{
			xproto.EventMaskSubstructureRedirect |
				xproto.EventMaskSubstructureNotify |
				xproto.EventMaskPropertyChange, // 1
			uint32(cursor), // 2
		}).Check(); err != nil {
		return 0, fmt.Errorf("another window manager is running: %w", err)
	}

	for i, kb := range cfg.Keybinds {
		mods, err := kb.ModMask()
		if err != nil {
			return 0, fmt.Errorf("keybinds[%d]: %w", i, err)
		}

		// Grab with every combination of Lock and NumLock so they do not
		// block the keybind.
		for _, extra := range []uint16{0, xproto.ModMaskLock, xproto.ModMask2, xproto.ModMaskLock | xproto.ModMask2} {
			if err := xproto.GrabKeyChecked(conn, true, screen.Root, mods|extra, kb.Key,
				xproto.GrabModeAsync, xproto.GrabModeAsync).Check(); err != nil {
				return 0, fmt.Errorf("grab key %d: %w", kb.Key, err)
			}
		}
	}

	return screen.Root, nil
}

// Adopt manages windows that were mapped before we started.
func Adopt(conn *xgb.Conn, root xproto.Window) ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(conn, root).Reply()
	if err != nil {
		return nil, err
	}

	var wids []xproto.Window
	for _, wid := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(conn, wid).Reply()
		if err != nil {
			slog.Debug("Failed to get window attributes", "wid", wid, "error", err)
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		wids = append(wids, wid)
	}

	return wids, nil
}
