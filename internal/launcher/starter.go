package launcher

import (
	"context"
	"fmt"
	"os/exec"
)

// Starter starts a registered program.
type Starter interface {
	Start(ctx context.Context, path string) error
}

// StarterFunc adapts a function to the Starter interface.
type StarterFunc func(ctx context.Context, path string) error

// Start calls f(ctx, path).
func (f StarterFunc) Start(ctx context.Context, path string) error {
	return f(ctx, path)
}

// ExecStarter starts programs as detached processes and does not wait for them.
type ExecStarter struct{}

// Start implements Starter.
func (ExecStarter) Start(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Not bound to ctx: the program outlives the launcher.
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", path, err)
	}
	return cmd.Process.Release()
}
