package xwm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jezek/xgb"
)

var ErrConnectionClosed = errors.New("x connection closed")

// ReceiveEvents forwards X events to eventC until the connection closes or
// ctx is done.
func ReceiveEvents(ctx context.Context, conn *xgb.Conn, eventC chan<- xgb.Event) {
	defer close(eventC)
	slog := slog.With("func", "xwm.ReceiveEvents")

	for {
		// WaitForEvent either returns an event or an error and never both.
		// If both are nil, then the connection is closed.
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			slog.Debug("exit: no event or error")
			return
		}

		// An error here is the response to an unchecked request, such as the
		// ones sent by client.Client. They are not fatal.
		if err != nil {
			slog.Warn("X request failed", "error", err)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case eventC <- ev:
		}
	}
}

// HandleEvents dispatches events from eventC to wm until ctx is done, the
// connection closes or wm returns an error.
func HandleEvents(ctx context.Context, wm *WM, eventC <-chan xgb.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-eventC:
			if !ok {
				return ErrConnectionClosed
			}

			if err := wm.Handle(ctx, ev); err != nil {
				return err
			}
		}
	}
}
