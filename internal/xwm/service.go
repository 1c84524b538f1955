package xwm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ItsNotGoodName/x-tilewm/internal/config"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/k0kubun/pp"
	"github.com/thejerf/suture/v4"
)

// Service runs the window manager. Every run starts with a fresh X
// connection and session, so a restart after a fatal session error does not
// reuse the broken state.
type Service struct {
	store config.Store
}

func NewService(store config.Store) Service {
	return Service{store: store}
}

func (s Service) String() string {
	return "xwm.Service"
}

func (s Service) Serve(ctx context.Context) error {
	cfg, err := s.store.GetConfig()
	if err != nil {
		return err
	}
	slog.Debug("Loaded config", "config", pp.Sprint(cfg))

	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	defer conn.Close()

	root, err := Setup(conn, cfg)
	if err != nil {
		// Retrying will not remove the other window manager.
		return errors.Join(err, suture.ErrDoNotRestart)
	}

	wm, err := NewWM(NewConn(conn), cfg)
	if err != nil {
		return err
	}

	wids, err := Adopt(conn, root)
	if err != nil {
		return err
	}
	for _, wid := range wids {
		if err := wm.Handle(ctx, xproto.MapRequestEvent{Parent: root, Window: wid}); err != nil {
			return err
		}
	}

	if err := wm.Autostart(cfg.Autostart); err != nil {
		return err
	}

	eventC := make(chan xgb.Event)
	go ReceiveEvents(ctx, conn, eventC)

	err = HandleEvents(ctx, wm, eventC)
	if errors.Is(err, ErrQuit) {
		slog.Info("Quitting")
		return errors.Join(err, suture.ErrTerminateSupervisorTree)
	}

	return err
}
