package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hartyporpoise/shellman/internal/styles"
)

var dots = spinner.Spinner{
	Frames: styles.SpinnerFrames,
	FPS:    time.Second / 12,
}

// doneMsg carries the result of the spinner's background work.
type doneMsg[T any] struct {
	val T
	err error
}

type spinModel[T any] struct {
	styles    styles.Styles
	label     string
	spinner   spinner.Model
	work      tea.Cmd
	result    doneMsg[T]
	done      bool
	cancelled bool
}

// Spin runs fn while a spinner labelled label animates on out. Ctrl+C
// cancels the context passed to fn and makes Spin return ErrCancelled.
func Spin[T any](ctx context.Context, in io.Reader, out io.Writer, label string, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := styles.New(out)
	sp := spinner.New(spinner.WithSpinner(dots), spinner.WithStyle(st.Spinner))
	m := spinModel[T]{
		styles:  st,
		label:   label,
		spinner: sp,
		work: func() tea.Msg {
			v, err := fn(ctx)
			return doneMsg[T]{val: v, err: err}
		},
	}

	var zero T
	final, err := run(ctx, in, out, m)
	if err != nil {
		return zero, err
	}
	fm := final.(spinModel[T])
	if fm.cancelled {
		return zero, ErrCancelled
	}
	return fm.result.val, fm.result.err
}

func (m spinModel[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m spinModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg[T]:
		m.result = msg
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		if isCancelKey(msg) {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinModel[T]) View() string {
	switch {
	case m.cancelled:
		return m.styles.Warning.Render(styles.IconWarning+" "+m.label) + " " + m.styles.Muted.Render("(cancelled)") + "\n"
	case m.done && m.result.err != nil:
		return m.styles.Error.Render(styles.IconError+" "+m.label) + "\n"
	case m.done:
		return m.styles.Success.Render(styles.IconSuccess+" "+m.label) + "\n"
	}
	return m.spinner.View() + " " + m.styles.Label.Render(m.label+"...") + "\n"
}
