package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hartyporpoise/shellman/internal/config"
	"github.com/hartyporpoise/shellman/internal/render"
)

func newTestApp(t *testing.T, opts Options, in io.Reader) (*App, *bytes.Buffer) {
	t.Helper()
	if opts.ConfigDir == "" {
		opts.ConfigDir = filepath.Join(t.TempDir(), ".shellman")
	}
	var out bytes.Buffer
	a := New(opts, in, &out, NewLogger("error", "text", io.Discard))
	a.environ = func() []string { return []string{"SHELL=/bin/bash", "MY_API_KEY=sk-do-not-print"} }
	return a, &out
}

func outputLines(out *bytes.Buffer) []string {
	return strings.Split(out.String(), "\n")
}

func TestRunTextFlag(t *testing.T) {
	t.Parallel()

	a, out := newTestApp(t, Options{Text: "hello", NonInteractive: true}, strings.NewReader(""))
	require.NoError(t, a.Run(context.Background()))

	require.Contains(t, outputLines(out), "hello")
	require.NotContains(t, out.String(), render.DebugHeader)
	require.Contains(t, out.String(), "Environment")
}

func TestRunPositionalArgs(t *testing.T) {
	t.Parallel()

	a, out := newTestApp(t, Options{Args: []string{"list", "big", "files"}}, strings.NewReader(""))
	require.NoError(t, a.Run(context.Background()))

	require.Contains(t, outputLines(out), "list big files")
}

func TestRunTextFlagWinsOverArgs(t *testing.T) {
	t.Parallel()

	a, out := newTestApp(t, Options{Text: "from flag", Args: []string{"ignored"}}, strings.NewReader(""))
	require.NoError(t, a.Run(context.Background()))

	require.Contains(t, outputLines(out), "from flag")
	require.NotContains(t, out.String(), "ignored")
}

func TestRunNoMessageNonInteractive(t *testing.T) {
	t.Parallel()

	a, out := newTestApp(t, Options{}, strings.NewReader(""))
	require.NoError(t, a.Run(context.Background()))

	require.Contains(t, out.String(), "(no message provided)")
}

func TestRunDebugCreatesDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), ".shellman")
	a, out := newTestApp(t, Options{Debug: true, ConfigDir: dir}, strings.NewReader(""))
	require.NoError(t, a.Run(context.Background()))

	s := config.NewStore(dir)
	require.Equal(t, filepath.Join(dir, "config.json"), s.Path())
	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, config.Defaults(), got)
	require.NotEmpty(t, got.APIProvider)
	require.NotEmpty(t, got.APIModel)
	require.NotNil(t, got.HistoryEnable)

	require.Contains(t, out.String(), render.DebugHeader)
	require.Contains(t, out.String(), s.Path())
	require.Contains(t, out.String(), "SHELL=/bin/bash")
	require.NotContains(t, out.String(), "sk-do-not-print")
}

func TestRunInteractiveWithCompleteConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), ".shellman")
	s := config.NewStore(dir)
	c := config.Defaults()
	c.APIKey = "sk-test"
	require.NoError(t, s.Save(c))

	a, out := newTestApp(t, Options{Text: "hello", ConfigDir: dir}, strings.NewReader(""))
	a.isTerminal = func(io.Reader) bool { return true }
	require.NoError(t, a.Run(context.Background()))

	require.Contains(t, out.String(), "hello")
	require.Contains(t, out.String(), "Environment")
}

func TestInteractive(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		opts Options
		tty  bool
		want bool
	}{
		{"terminal", Options{}, true, true},
		{"piped stdin", Options{}, false, false},
		{"debug", Options{Debug: true}, true, false},
		{"non-interactive flag", Options{NonInteractive: true}, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.opts.Interactive(tc.tty))
		})
	}
}

func TestIsTerminalRejectsNonFiles(t *testing.T) {
	t.Parallel()

	require.False(t, isTerminal(strings.NewReader("")))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()
	require.False(t, isTerminal(f))
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLogger("info", "json", &buf)
	log.Debug("hidden")
	log.Info("shown", "k", "v")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
	require.Contains(t, buf.String(), `"k":"v"`)

	buf.Reset()
	log = NewLogger("bogus", "text", &buf)
	log.Info("below warn")
	log.Warn("at warn")
	require.NotContains(t, buf.String(), "below warn")
	require.Contains(t, buf.String(), "msg=\"at warn\"")
}
