// Shellman reports the shell and operating system it runs in and echoes a
// message, keeping API-provider settings in ~/.shellman/config.json.
//
// Usage:
//
//	shellman hello there
//	shellman -t "hello" --non-interactive
//	shellman --debug
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/hartyporpoise/shellman/internal/app"
	"github.com/hartyporpoise/shellman/internal/render"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

const banner = `
 ┌─┐┬ ┬┌─┐┬  ┬  ┌┬┐┌─┐┌┐┌
 └─┐├─┤├┤ │  │  │││├─┤│││
 └─┘┴ ┴└─┘┴─┘┴─┘┴ ┴┴ ┴┘└┘

  Your shell, your environment, your message.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		render.New(os.Stderr).Error(err)
		stop()
		os.Exit(1)
	}
}

// run builds the root command and executes it with args.
func run(ctx context.Context, in io.Reader, out, errOut io.Writer, args []string) error {
	root := newRootCmd(in, out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:     "shellman [message...]",
		Short:   "Shellman: show your shell environment and echo a message",
		Long:    banner,
		Version: version,
		Args:    cobra.ArbitraryArgs,
		// Errors are printed by main in its own style.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Args = args
			level := "warn"
			if opts.Debug {
				level = "debug"
			}
			log := app.NewLogger(level, opts.LogFormat, errOut)
			return app.New(opts, in, out, log).Run(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate("shellman {{.Version}}\n")

	f := root.Flags()
	f.BoolVarP(&opts.Debug, "debug", "d", false,
		"Print verbose process, system and environment details (implies --non-interactive)")
	f.StringVarP(&opts.Text, "text", "t", "",
		"Message to echo (default: the remaining arguments)")
	f.BoolVar(&opts.NonInteractive, "non-interactive", false,
		"Never prompt; fill missing configuration from defaults")
	f.StringVar(&opts.ConfigDir, "config-dir", envOrDefault("SHELLMAN_CONFIG_DIR", ""),
		"Configuration directory (default ~/.shellman)")
	f.StringVar(&opts.LogFormat, "log-format", strings.ToLower(envOrDefault("SHELLMAN_LOG_FORMAT", "text")),
		"Log output format: text or json")

	return root
}

// envOrDefault returns the value of an env var, or fallback if unset.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
