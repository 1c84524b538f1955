package event

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

var ErrEmptyCommand = errors.New("empty command")

type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %s", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Launcher starts a process without waiting for it to finish.
type Launcher interface {
	Launch(name string, args []string) error
}

// ExecLauncher starts processes with os/exec. Started processes inherit the
// environment and working directory and are reaped in the background.
type ExecLauncher struct{}

func (ExecLauncher) Launch(name string, args []string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		err := cmd.Wait()
		slog.Debug("Spawned process exited", "name", name, "pid", cmd.Process.Pid, "error", err)
	}()

	return nil
}

// Spawn runs commandLine split on whitespace. The first field is the
// executable and the rest are its arguments. There is no quoting or shell
// expansion.
func (c *Context) Spawn(commandLine string) error {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return ErrEmptyCommand
	}

	if err := c.launcher.Launch(fields[0], fields[1:]); err != nil {
		return &SpawnError{Name: fields[0], Err: err}
	}

	c.Logger().Debug("Spawned process", "command", commandLine)

	return nil
}
