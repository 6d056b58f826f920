// Package app sequences a shellman run: configuration, environment
// detection, message input and rendering.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/hartyporpoise/shellman/internal/config"
	"github.com/hartyporpoise/shellman/internal/envinfo"
	"github.com/hartyporpoise/shellman/internal/metrics"
	"github.com/hartyporpoise/shellman/internal/render"
	"github.com/hartyporpoise/shellman/internal/sysinfo"
	"github.com/hartyporpoise/shellman/internal/tui"
)

// spinnerDelay keeps the environment spinner on screen long enough to see.
const spinnerDelay = 500 * time.Millisecond

// Options are the command-line settings of one run.
type Options struct {
	Debug          bool
	NonInteractive bool
	Text           string
	Args           []string // positional words, used as the message when Text is empty
	ConfigDir      string   // empty means ~/.shellman
	LogFormat      string
}

// Interactive reports whether prompts may be shown, given whether stdin is
// a terminal.
func (o Options) Interactive(stdinTTY bool) bool {
	return !o.Debug && !o.NonInteractive && stdinTTY
}

// App is a single shellman invocation.
type App struct {
	opts   Options
	in     io.Reader
	out    io.Writer
	log    *slog.Logger
	reader *envinfo.Reader

	// environ and isTerminal are replaced in tests.
	environ    func() []string
	isTerminal func(io.Reader) bool
}

// New returns an App reading keys from in and writing its report to out.
func New(opts Options, in io.Reader, out io.Writer, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{
		opts:       opts,
		in:         in,
		out:        out,
		log:        log,
		reader:     envinfo.NewReader(),
		environ:    os.Environ,
		isTerminal: isTerminal,
	}
}

// Run executes the whole sequence. Configuration problems are recovered
// inside the initializer; any other failure is returned.
func (a *App) Run(ctx context.Context) error {
	interactive := a.opts.Interactive(a.isTerminal(a.in))
	a.log.Debug("starting", "interactive", interactive, "debug", a.opts.Debug)

	mc := metrics.NewCollector()

	store, err := a.store()
	if err != nil {
		return err
	}
	var prompt config.Prompter
	if interactive {
		prompt = tui.NewPrompter(a.in, a.out)
	}

	done := mc.Start("config")
	cfg := config.NewInitializer(store, prompt, a.log).Init(ctx, !interactive)
	done(nil)

	done = mc.Start("environment")
	info, err := a.environment(ctx, interactive)
	done(err)
	if err != nil {
		return fmt.Errorf("gather environment: %w", err)
	}

	done = mc.Start("message")
	msg, err := a.message(ctx, interactive)
	done(err)
	if err != nil {
		return fmt.Errorf("read message: %w", err)
	}

	r := render.New(a.out)
	r.Environment(info)
	if a.opts.Debug {
		r.Debug(render.DebugInfo{
			Process:    render.CurrentProcess(),
			System:     sysinfo.Detect(),
			Config:     cfg,
			ConfigPath: store.Path(),
			Timings:    mc.Snapshot(),
			Env:        a.environ(),
		})
	}
	r.Message(msg)
	return nil
}

func (a *App) store() (*config.Store, error) {
	dir := a.opts.ConfigDir
	if dir == "" {
		var err error
		if dir, err = config.DefaultRoot(); err != nil {
			return nil, fmt.Errorf("config dir: %w", err)
		}
	}
	return config.NewStore(dir), nil
}

func (a *App) environment(ctx context.Context, interactive bool) (envinfo.Info, error) {
	if !interactive {
		return a.reader.Read(), nil
	}
	rd := *a.reader
	rd.Delay = spinnerDelay
	return tui.Spin(ctx, a.in, a.out, "Gathering environment information", rd.ReadContext)
}

// message picks the text to echo: the --text flag, then positional words,
// then a prompt when interactive.
func (a *App) message(ctx context.Context, interactive bool) (string, error) {
	if a.opts.Text != "" {
		return a.opts.Text, nil
	}
	if len(a.opts.Args) > 0 {
		return strings.Join(a.opts.Args, " "), nil
	}
	if !interactive {
		return "", nil
	}
	text, err := tui.NewPrompter(a.in, a.out).Input(ctx, "Message", "", false)
	if errors.Is(err, tui.ErrCancelled) {
		return "", fmt.Errorf("no message: %w", err)
	}
	return text, err
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
