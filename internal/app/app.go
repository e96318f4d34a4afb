// Package app wires configuration, calculators and the output surfaces into
// the fibwhole command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/fibwhole/internal/cli"
	"github.com/agbru/fibwhole/internal/config"
	apperrors "github.com/agbru/fibwhole/internal/errors"
	"github.com/agbru/fibwhole/internal/fibonacci"
	"github.com/agbru/fibwhole/internal/logging"
	"github.com/agbru/fibwhole/internal/tui"
	"github.com/agbru/fibwhole/internal/ui"
)

// Application represents the fibwhole application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	ErrWriter io.Writer
	// In feeds the console driver and the REPL.
	In io.Reader

	logger zerolog.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used by the interactive modes.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}

	programName := cli.ProgramName
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	app.logger = logging.NewConsoleLogger(errWriter, cfg.Verbose)
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	if a.Config.ConfigFile != "" {
		a.logger.Debug().Str("file", a.Config.ConfigFile).Msg("configuration file loaded")
	}

	switch {
	case a.Config.Console:
		return a.runConsole(ctx, out)
	case a.Config.Interactive:
		return a.runREPL(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Count > 0:
		return a.runSequenceList(ctx, out)
	default:
		return a.runCalculate(ctx, out)
	}
}

// lifecycle bounds ctx by the configured timeout and by SIGINT/SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runConsole runs the two-prompt console driver.
func (a *Application) runConsole(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	err := cli.RunSequence(ctx, a.In, out, cli.SequenceOptions{
		Calc:  a.Config.ToCalculationOptions(),
		Plain: a.Config.Plain,
	})
	if err == nil {
		return apperrors.ExitSuccess
	}
	fmt.Fprintln(out)
	if errors.Is(err, cli.ErrNoInput) {
		a.logger.Debug().Msg("console input ended")
		return apperrors.ExitSuccess
	}
	return a.handleError(err, out)
}

// runREPL starts the interactive session. The timeout applies to each
// command rather than to the session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		MaxGroups:   a.Config.ResolveMaxGroups(),
		Plain:       a.Config.Plain,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runTUI launches the dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancel := a.lifecycle(ctx)
	defer cancel()
	return tui.Run(ctx, a.Config, Version)
}

// handleError reports err the way calculation failures are reported and
// returns the matching exit code.
func (a *Application) handleError(err error, out io.Writer) int {
	a.logger.Debug().Err(err).Msg("run failed")
	return cli.CLIResultPresenter{}.HandleError(err, 0, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
