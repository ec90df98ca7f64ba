package convergetui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/gradlepin/pkg/converge"
	"github.com/macropower/gradlepin/pkg/log"
)

// Runner is the part of [converge.Converger] driven by the TUI.
type Runner interface {
	Run(ctx context.Context, dirs ...string) (*converge.Report, error)
	Subscribe(f func(any))
}

// TUI runs a [Runner] behind a [Model]. Log records are printed above the
// progress view instead of interleaving with it.
type TUI struct {
	r    Runner
	p    *tea.Program
	w    io.Writer
	verb string
	opts []tea.ProgramOption
}

// New creates a [TUI] writing to w and installs a default slog handler that
// routes records through it.
func New(w io.Writer, logLevel, verb string, r Runner, opts ...tea.ProgramOption) (*TUI, error) {
	c := &TUI{
		r:    r,
		w:    w,
		verb: verb,
		opts: opts,
	}

	c.r.Subscribe(c.broadcastEvent)

	h, err := log.CreateHandlerWithStrings(c, logLevel, string(log.FormatText))
	if err != nil {
		return nil, fmt.Errorf("create log handler: %w", err)
	}

	slog.SetDefault(slog.New(h))

	return c, nil
}

func (c *TUI) broadcastEvent(evt any) {
	if c.p != nil {
		c.p.Send(evt)
	}
}

// Write implements [io.Writer] for log output.
func (c *TUI) Write(p []byte) (int, error) {
	c.broadcastEvent(TeaMsgWriteLog(string(p)))

	return len(p), nil
}

// Run converges dirs while showing progress. Quitting the TUI cancels the
// run.
func (c *TUI) Run(ctx context.Context, dirs ...string) (*converge.Report, error) {
	opts := append([]tea.ProgramOption{tea.WithOutput(c.w), tea.WithContext(ctx)}, c.opts...)
	c.p = tea.NewProgram(NewModel(c.verb), opts...)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		report *converge.Report
		runErr error
	)

	finished := make(chan struct{})

	go func() {
		defer close(finished)

		report, runErr = c.r.Run(runCtx, dirs...)
	}()

	_, err := c.p.Run()
	cancel()

	if err != nil {
		<-finished

		return report, fmt.Errorf("launch tui: %w", err)
	}

	<-finished

	return report, runErr
}
