package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"stylemig/internal/batch"
)

// Interactive reports whether f is a terminal that can show progress
func Interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run executes work while rendering progress to out. work receives a
// context that is canceled when the user quits, and a callback that
// forwards batch events to the screen. Run returns after work returns.
func Run(ctx context.Context, title string, total int, out io.Writer,
	work func(ctx context.Context, emit func(batch.Event)) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(title, total, cancel), tea.WithOutput(out))

	var workErr error
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		workErr = work(ctx, func(e batch.Event) { p.Send(EventMsg(e)) })
		p.Send(DoneMsg{})
	}()

	_, runErr := p.Run()
	if runErr != nil {
		cancel()
	}
	<-finished

	if workErr != nil {
		return workErr
	}
	return runErr
}
