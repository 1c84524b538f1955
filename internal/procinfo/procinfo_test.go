package procinfo

import (
	"context"
	"errors"
	"math"
	"os"
	"testing"
)

func TestLookupSelf(t *testing.T) {
	p, err := Lookup(context.Background(), uint32(os.Getpid()))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name == "" {
		t.Error("empty process name")
	}
	if p.PID != uint32(os.Getpid()) {
		t.Errorf("PID = %d", p.PID)
	}
}

func TestLookupMissing(t *testing.T) {
	// Above the default pid_max on Linux.
	if _, err := Lookup(context.Background(), 1<<30); err == nil {
		t.Error("expected error")
	}
}

func TestLookupInvalid(t *testing.T) {
	for _, pid := range []uint32{0, math.MaxInt32 + 1, math.MaxUint32} {
		if _, err := Lookup(context.Background(), pid); !errors.Is(err, ErrInvalidPID) {
			t.Errorf("pid %d: err = %v, want ErrInvalidPID", pid, err)
		}
	}
}

func TestLookupSelfCmdline(t *testing.T) {
	p, err := Lookup(context.Background(), uint32(os.Getpid()))
	if err != nil {
		t.Fatal(err)
	}
	if p.Cmdline == "" {
		t.Error("empty cmdline for own process")
	}
}
