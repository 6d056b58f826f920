package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hartyporpoise/shellman/internal/styles"
)

// Input asks for a line of text. With secret set the typed characters are
// masked.
func (p *Prompter) Input(ctx context.Context, label, initial string, secret bool) (string, error) {
	final, err := run(ctx, p.in, p.out, newInputModel(p.styles, label, initial, secret))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.input.Value(), nil
}

// Select asks the user to pick one of options. initial preselects an entry.
func (p *Prompter) Select(ctx context.Context, label string, options []string, initial string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("select %q: no options", label)
	}
	final, err := run(ctx, p.in, p.out, newSelectModel(p.styles, label, options, initial))
	if err != nil {
		return "", err
	}
	m := final.(selectModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.options[m.cursor], nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, label string, initial bool) (bool, error) {
	final, err := run(ctx, p.in, p.out, newConfirmModel(p.styles, label, initial))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.value, nil
}

// ---------- text input ----------

type inputModel struct {
	styles    styles.Styles
	label     string
	secret    bool
	input     textinput.Model
	done      bool
	cancelled bool
}

func newInputModel(st styles.Styles, label, initial string, secret bool) inputModel {
	ti := textinput.New()
	ti.Prompt = styles.IconCursor + " "
	ti.CharLimit = 512
	ti.Width = 60
	ti.SetValue(initial)
	ti.CursorEnd()
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()

	return inputModel{styles: st, label: label, secret: secret, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isCancelKey(key):
			m.cancelled = true
			return m, tea.Quit
		case key.Type == tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	label := m.styles.Title.Render(m.label)
	switch {
	case m.cancelled:
		return label + " " + m.styles.Muted.Render("(skipped)") + "\n"
	case m.done:
		value := m.input.Value()
		if m.secret {
			value = strings.Repeat("•", len([]rune(value)))
		}
		return label + " " + m.styles.Value.Render(value) + "\n"
	}
	return label + "\n" + m.input.View() + "\n" +
		m.styles.Muted.Render("enter to confirm • esc to skip") + "\n"
}

// ---------- single choice ----------

type selectModel struct {
	styles    styles.Styles
	label     string
	options   []string
	cursor    int
	done      bool
	cancelled bool
}

func newSelectModel(st styles.Styles, label string, options []string, initial string) selectModel {
	cursor := slices.Index(options, initial)
	if cursor < 0 {
		cursor = 0
	}
	return selectModel{styles: st, label: label, options: slices.Clone(options), cursor: cursor}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if isCancelKey(key) {
		m.cancelled = true
		return m, tea.Quit
	}

	switch key.String() {
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.options)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.options) - 1
	case "enter":
		m.done = true
		return m, tea.Quit
	default:
		// 1-9 jump straight to an entry.
		if s := key.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.options) {
				m.cursor = i
			}
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	label := m.styles.Title.Render(m.label)
	switch {
	case m.cancelled:
		return label + " " + m.styles.Muted.Render("(skipped)") + "\n"
	case m.done:
		return label + " " + m.styles.Value.Render(m.options[m.cursor]) + "\n"
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString("\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render(styles.IconCursor + " " + opt))
		} else {
			b.WriteString("  " + m.styles.Value.Render(opt))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render("↑/↓ to move • enter to select • esc to skip"))
	b.WriteString("\n")
	return b.String()
}

// ---------- yes / no ----------

type confirmModel struct {
	styles    styles.Styles
	label     string
	value     bool
	done      bool
	cancelled bool
}

func newConfirmModel(st styles.Styles, label string, initial bool) confirmModel {
	return confirmModel{styles: st, label: label, value: initial}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if isCancelKey(key) {
		m.cancelled = true
		return m, tea.Quit
	}

	switch key.String() {
	case "y", "Y":
		m.value = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.value = false
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.value = !m.value
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	label := m.styles.Title.Render(m.label)
	switch {
	case m.cancelled:
		return label + " " + m.styles.Muted.Render("(skipped)") + "\n"
	case m.done:
		answer := "no"
		if m.value {
			answer = "yes"
		}
		return label + " " + m.styles.Value.Render(answer) + "\n"
	}

	yes, no := m.styles.Muted.Render("yes"), m.styles.Muted.Render("no")
	if m.value {
		yes = m.styles.Selected.Render(styles.IconCursor + " yes")
	} else {
		no = m.styles.Selected.Render(styles.IconCursor + " no")
	}
	return label + "  " + yes + "  " + no + "\n" +
		m.styles.Muted.Render("y/n • ←/→ to toggle • enter to confirm") + "\n"
}
