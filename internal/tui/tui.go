// Package tui holds the small bubbletea programs shellman runs inline in the
// terminal: text input, single choice, yes/no confirmation and a spinner.
package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hartyporpoise/shellman/internal/styles"
)

// ErrCancelled is returned when the user aborts a prompt with Ctrl+C or Esc.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks questions on a terminal. It implements config.Prompter.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	styles styles.Styles
}

// NewPrompter returns a Prompter reading keys from in and drawing on out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, styles: styles.New(out)}
}

// run executes m inline (no alternate screen) and returns the final model.
func run(ctx context.Context, in io.Reader, out io.Writer, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil, ErrCancelled
		}
		return nil, err
	}
	return final, nil
}

func isCancelKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc
}
