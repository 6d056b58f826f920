// Package render writes shellman's human-readable output: the environment
// summary, the optional debug dump and the user's message.
package render

import (
	"fmt"
	"io"

	"github.com/hartyporpoise/shellman/internal/envinfo"
	"github.com/hartyporpoise/shellman/internal/styles"
)

// Renderer writes styled text to an output sink.
type Renderer struct {
	out    io.Writer
	styles styles.Styles
}

// New returns a Renderer writing to out. Styling degrades to plain text when
// out is not a terminal.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out, styles: styles.New(out)}
}

// Environment prints the OS and shell summary.
func (r *Renderer) Environment(info envinfo.Info) {
	r.section("Environment")
	r.rows([][2]string{
		{"OS", info.OSType},
		{"OS version", info.OSVersion},
		{"Architecture", info.Architecture},
		{"Shell", info.ShellName},
		{"Shell path", info.ShellPath},
	})
	fmt.Fprintln(r.out)
}

// Message prints the user's text on its own line, exactly as given.
func (r *Renderer) Message(text string) {
	r.section("Message")
	if text == "" {
		fmt.Fprintln(r.out, r.styles.Muted.Render("(no message provided)"))
		return
	}
	fmt.Fprintln(r.out, text)
}

// Error prints err as a single styled line.
func (r *Renderer) Error(err error) {
	fmt.Fprintln(r.out, r.styles.Error.Render(styles.IconError+" Error: "+err.Error()))
}

func (r *Renderer) section(title string) {
	fmt.Fprintln(r.out, r.styles.Section.Render(title))
}

// rows prints aligned label/value pairs.
func (r *Renderer) rows(rows [][2]string) {
	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}
	for _, row := range rows {
		label := fmt.Sprintf("  %-*s", width+1, row[0]+":")
		value := row[1]
		if value == "" {
			value = "-"
		}
		fmt.Fprintln(r.out, r.styles.Label.Render(label)+" "+r.styles.Value.Render(value))
	}
}
