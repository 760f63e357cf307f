package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aretw0/quicknote"
	"github.com/aretw0/quicknote/internal/config"
	"github.com/aretw0/quicknote/pkg/core"
)

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitUsage     = 2
	exitInterrupt = 130
)

var errNoCommand = errors.New("no command given")

// usageError marks bad flags or arguments.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// app carries what the commands share for one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	verbose    bool
	file       string
	configPath string
	readOnly   bool

	cfg    *config.Config
	logger *slog.Logger
	svc    *core.Service
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "quicknote",
		Short: "A small command-line note keeper",
		Long: `quicknote keeps short notes with tags and a priority in a single local file.
Every change is written with an atomic replace, so the file is never half-written.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, opts))
			slog.SetDefault(a.logger)

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("file") {
				cfg.File = a.file
			}
			if a.readOnly {
				cfg.ReadOnly = true
			}
			a.cfg = cfg

			a.logger.Debug("configuration loaded", "source", cfg.Source, "file", cfg.File, "read_only", cfg.ReadOnly)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errNoCommand
		},
	}

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&a.file, "file", "", "Note store file (default ~/.quicknotes.json, or $"+config.EnvFile+")")
	flags.StringVar(&a.configPath, "config", "", "Config file (default <user config dir>/quicknote/config.yaml, or $"+config.EnvConfig+")")
	flags.BoolVar(&a.readOnly, "read-only", false, "Open the store without write access")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDoneCmd(a),
		newClearDoneCmd(a),
		newSearchCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
		newSeedCmd(a),
		newWatchCmd(a),
		newInfoCmd(a),
		newVersionCmd(a),
	)
	return root
}

// service opens the store on first use.
func (a *app) service() (*core.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	svc, err := quicknote.New(a.cfg.File,
		quicknote.WithLogger(a.logger),
		quicknote.WithReadOnly(a.cfg.ReadOnly),
	)
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}

func (a *app) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(a.stdout, format, args...)
	return err
}

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	var uErr usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNoCommand):
		fmt.Fprint(stderr, root.UsageString())
		return exitUsage
	case ctx.Err() != nil:
		fmt.Fprintln(stderr, "\n(interrupted)")
		return exitInterrupt
	case errors.Is(err, syscall.EPIPE):
		return exitOK
	case errors.As(err, &uErr):
		fmt.Fprintf(stderr, "Error: %v\nRun 'quicknote --help' for usage.\n", err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}
