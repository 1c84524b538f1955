package event

import (
	"errors"
	"os/exec"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/ItsNotGoodName/x-tilewm/internal/lock"
	"github.com/ItsNotGoodName/x-tilewm/internal/session"
)

type launch struct {
	name string
	args []string
}

// fakeLauncher records launches and never runs anything.
type fakeLauncher struct {
	mu       sync.Mutex
	launches []launch
	err      error
}

func (f *fakeLauncher) Launch(name string, args []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.launches = append(f.launches, launch{name: name, args: args})
	return nil
}

func newScreen(names ...string) *lock.Mutex[session.Screen] {
	return lock.New(session.NewScreen(names...))
}

func TestNewContextSnapshot(t *testing.T) {
	screen := newScreen("1", "2", "3")
	_ = screen.With(func(s *session.Screen) error { return s.FocusTag(2) })

	ctx, err := NewContext(nil, screen)
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.CurrTagID(); got != 2 {
		t.Fatalf("CurrTagID() = %d, want 2", got)
	}
	if ctx.ID == "" {
		t.Error("missing ID")
	}

	if err := screen.With(func(s *session.Screen) error { return s.FocusTag(3) }); err != nil {
		t.Fatal(err)
	}
	if got := ctx.CurrTagID(); got != 2 {
		t.Errorf("CurrTagID() after focus change = %d, want 2", got)
	}

	ctx2, err := NewContext(nil, screen)
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx2.CurrTagID(); got != 3 {
		t.Errorf("new context CurrTagID() = %d, want 3", got)
	}
}

func TestNewContextReleasesLock(t *testing.T) {
	screen := newScreen("1")
	if _, err := NewContext(nil, screen); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		_ = screen.With(func(s *session.Screen) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("screen lock still held after NewContext")
	}
}

func TestNewContextPoisoned(t *testing.T) {
	screen := newScreen("1")
	func() {
		defer func() { _ = recover() }()
		_ = screen.With(func(s *session.Screen) error { panic("abandoned") })
	}()

	if _, err := NewContext(nil, screen); !errors.Is(err, lock.ErrPoisoned) {
		t.Errorf("err = %v, want ErrPoisoned", err)
	}
}

func TestNewContextNoFocusedTag(t *testing.T) {
	if _, err := NewContext(nil, newScreen()); !errors.Is(err, session.ErrNoFocusedTag) {
		t.Errorf("err = %v, want ErrNoFocusedTag", err)
	}
}

func TestNewContextConcurrent(t *testing.T) {
	screen := newScreen("1", "2")

	stop := make(chan struct{})
	var flipper sync.WaitGroup
	flipper.Add(1)
	go func() {
		defer flipper.Done()
		var id session.TagID = 1
		for {
			select {
			case <-stop:
				return
			default:
			}
			id = 3 - id
			_ = screen.With(func(s *session.Screen) error { return s.FocusTag(id) })
		}
	}()

	var wg sync.WaitGroup
	errC := make(chan error, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, err := NewContext(nil, screen)
			if err != nil {
				errC <- err
				return
			}
			if id := ctx.CurrTagID(); id != 1 && id != 2 {
				errC <- errors.New("inconsistent tag id")
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("deadlock building contexts")
	}
	close(stop)
	flipper.Wait()
	close(errC)

	for err := range errC {
		t.Error(err)
	}
}

func TestSpawnEmpty(t *testing.T) {
	launcher := &fakeLauncher{}
	ctx, err := NewContext(nil, newScreen("1"), WithLauncher(launcher))
	if err != nil {
		t.Fatal(err)
	}

	for _, cmd := range []string{"", "   ", "\t\n"} {
		if err := ctx.Spawn(cmd); !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("Spawn(%q) = %v, want ErrEmptyCommand", cmd, err)
		}
	}
	if len(launcher.launches) != 0 {
		t.Errorf("launched %v", launcher.launches)
	}
}

func TestSpawnSplitsFields(t *testing.T) {
	launcher := &fakeLauncher{}
	ctx, err := NewContext(nil, newScreen("1"), WithLauncher(launcher))
	if err != nil {
		t.Fatal(err)
	}

	if err := ctx.Spawn("  xterm   -e  'htop -d 5' "); err != nil {
		t.Fatal(err)
	}

	if len(launcher.launches) != 1 {
		t.Fatalf("launches = %v", launcher.launches)
	}
	got := launcher.launches[0]
	if got.name != "xterm" {
		t.Errorf("name = %q", got.name)
	}
	if want := []string{"-e", "'htop", "-d", "5'"}; !slices.Equal(got.args, want) {
		t.Errorf("args = %q, want %q", got.args, want)
	}
}

func TestSpawnLaunchError(t *testing.T) {
	errLaunch := errors.New("no such file")
	ctx, err := NewContext(nil, newScreen("1"), WithLauncher(&fakeLauncher{err: errLaunch}))
	if err != nil {
		t.Fatal(err)
	}

	err = ctx.Spawn("missing --flag")
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("err = %v, want *SpawnError", err)
	}
	if spawnErr.Name != "missing" || !errors.Is(err, errLaunch) {
		t.Errorf("err = %+v", spawnErr)
	}
}

func TestExecLauncher(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not found")
	}

	ctx, err := NewContext(nil, newScreen("1"))
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if err := ctx.Spawn("sleep 5"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Spawn waited %s for the child", elapsed)
	}
}

func TestExecLauncherNotFound(t *testing.T) {
	ctx, err := NewContext(nil, newScreen("1"))
	if err != nil {
		t.Fatal(err)
	}

	err = ctx.Spawn("/nonexistent/x-tilewm-test-binary")
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Errorf("err = %v, want *SpawnError", err)
	}
}
