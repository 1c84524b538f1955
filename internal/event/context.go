// Package event gives each dispatched X event a view of the shared session.
package event

import (
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/x-tilewm/internal/client"
	"github.com/ItsNotGoodName/x-tilewm/internal/lock"
	"github.com/ItsNotGoodName/x-tilewm/internal/session"
	"github.com/google/uuid"
)

type Option func(c *Context)

func WithLauncher(l Launcher) Option {
	return func(c *Context) {
		c.launcher = l
	}
}

// Context is built once per dispatched event.
//
// The focused tag id is read once when the context is built and is not
// refreshed. Build a new context to see a later tag change.
type Context struct {
	ID     string
	Conn   client.Conn
	Screen *lock.Mutex[session.Screen]

	currTagID session.TagID
	launcher  Launcher
}

// NewContext holds the screen lock only long enough to read the focused tag.
// It fails with lock.ErrPoisoned if a previous holder panicked; callers must
// not keep dispatching on that screen.
func NewContext(conn client.Conn, screen *lock.Mutex[session.Screen], opts ...Option) (*Context, error) {
	var currTagID session.TagID
	if err := screen.With(func(s *session.Screen) error {
		tag, err := s.FocusedTag()
		if err != nil {
			return err
		}
		currTagID = tag.ID
		return nil
	}); err != nil {
		return nil, fmt.Errorf("event context: %w", err)
	}

	c := &Context{
		ID:        uuid.NewString(),
		Conn:      conn,
		Screen:    screen,
		currTagID: currTagID,
		launcher:  ExecLauncher{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Context) CurrTagID() session.TagID {
	return c.currTagID
}

func (c *Context) Logger() *slog.Logger {
	return slog.With("event", c.ID)
}
