// Package clipboard writes text to the system clipboard through a chain of
// capabilities and tracks the short-lived "copied" confirmation.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// ErrUnsupported is returned by a Writer that cannot reach a clipboard in the
// current environment.
var ErrUnsupported = errors.New("clipboard: unsupported")

// Writer writes text to a clipboard.
type Writer interface {
	Write(ctx context.Context, text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, text string) error

func (f WriterFunc) Write(ctx context.Context, text string) error { return f(ctx, text) }

// Chain tries each writer in order and stops at the first success.
type Chain []Writer

func (c Chain) Write(ctx context.Context, text string) error {
	if len(c) == 0 {
		return ErrUnsupported
	}
	var errs []error
	for _, w := range c {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := w.Write(ctx, text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return fmt.Errorf("clipboard: all writers failed: %w", errors.Join(errs...))
}

// OSC52 writes using the terminal escape sequence, which reaches the local
// clipboard even over SSH. It only works when Out is a terminal.
type OSC52 struct {
	Out  io.Writer
	Fd   int
	Tmux bool
}

// NewOSC52 returns an OSC52 writer for stderr.
func NewOSC52() *OSC52 {
	return &OSC52{
		Out:  os.Stderr,
		Fd:   int(os.Stderr.Fd()),
		Tmux: os.Getenv("TMUX") != "",
	}
}

func (o *OSC52) Write(_ context.Context, text string) error {
	if o.Out == nil || !term.IsTerminal(o.Fd) {
		return fmt.Errorf("%w: osc52 needs a terminal", ErrUnsupported)
	}
	seq := osc52.New(text)
	if o.Tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(o.Out); err != nil {
		return fmt.Errorf("clipboard: osc52: %w", err)
	}
	return nil
}

// Command pipes text into the first available clipboard utility.
type Command struct {
	// Candidates are tried in order; the first whose binary is on PATH is used.
	Candidates [][]string
	lookPath   func(string) (string, error)
}

// NewCommand returns a Command with the usual macOS, Wayland and X11 tools.
func NewCommand() *Command {
	return &Command{
		Candidates: [][]string{
			{"pbcopy"},
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		},
		lookPath: exec.LookPath,
	}
}

func (c *Command) Write(ctx context.Context, text string) error {
	look := c.lookPath
	if look == nil {
		look = exec.LookPath
	}
	for _, argv := range c.Candidates {
		if len(argv) == 0 {
			continue
		}
		bin, err := look(argv[0])
		if err != nil {
			continue
		}
		cmd := exec.CommandContext(ctx, bin, argv[1:]...)
		cmd.Stdin = strings.NewReader(text)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("clipboard: %s: %w: %s", argv[0], err, strings.TrimSpace(stderr.String()))
		}
		return nil
	}
	return fmt.Errorf("%w: no clipboard utility on PATH", ErrUnsupported)
}

// System is the default chain: the terminal escape sequence first, then an
// external utility.
func System() Chain {
	return Chain{NewOSC52(), NewCommand()}
}
