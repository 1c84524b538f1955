// Package procinfo looks up the process that owns a window.
package procinfo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v3/process"
)

var ErrInvalidPID = errors.New("invalid pid")

type Process struct {
	PID     uint32
	Name    string
	Cmdline string
}

// Lookup resolves a _NET_WM_PID. The pid is only meaningful for clients
// running on the same host as the window manager.
func Lookup(ctx context.Context, pid uint32) (Process, error) {
	if pid == 0 || pid > math.MaxInt32 {
		return Process{}, fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}

	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return Process{}, err
	}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		return Process{}, err
	}

	// Cmdline is unreadable for processes of other users.
	cmdline, _ := p.CmdlineWithContext(ctx)

	return Process{
		PID:     pid,
		Name:    name,
		Cmdline: cmdline,
	}, nil
}
