// Package styles defines the shellman terminal palette and text styles.
// Using the Catppuccin Mocha colors.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha color palette
var (
	Mauve    = lipgloss.Color("#CBA6F7")
	Red      = lipgloss.Color("#F38BA8")
	Peach    = lipgloss.Color("#FAB387")
	Green    = lipgloss.Color("#A6E3A1")
	Sapphire = lipgloss.Color("#74C7EC")
	Text     = lipgloss.Color("#CDD6F4")
	Subtext0 = lipgloss.Color("#A6ADC8")
	Overlay0 = lipgloss.Color("#6C7086")
)

// Semantic colors
var (
	Primary   = Mauve
	Secondary = Green
	Accent    = Sapphire
	Danger    = Red
	Warning   = Peach
	TextMuted = Subtext0
)

// Spinner frames for animated loading
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Icons
var (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconCursor  = "❯"
)

// Styles is the set of text styles bound to one output. Building them from
// a renderer tied to the writer means plain text is produced when the writer
// is not a terminal.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Selected lipgloss.Style
	Spinner  lipgloss.Style
}

// New returns Styles rendered for w.
func New(w io.Writer) Styles {
	return FromRenderer(lipgloss.NewRenderer(w))
}

// FromRenderer returns Styles bound to r.
func FromRenderer(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Foreground(Primary).
			Bold(true),
		Section: r.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true),
		Label: r.NewStyle().
			Foreground(TextMuted),
		Value: r.NewStyle().
			Foreground(Text),
		Muted: r.NewStyle().
			Foreground(Overlay0),
		Success: r.NewStyle().
			Foreground(Secondary).
			Bold(true),
		Error: r.NewStyle().
			Foreground(Danger).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(Warning),
		Selected: r.NewStyle().
			Foreground(Accent).
			Bold(true),
		Spinner: r.NewStyle().
			Foreground(Primary),
	}
}
