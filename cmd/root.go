package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Johannes-Berggren/publish/internal/config"
	"github.com/Johannes-Berggren/publish/internal/git"
	"github.com/Johannes-Berggren/publish/internal/logfields"
	"github.com/Johannes-Berggren/publish/internal/publish"
	"github.com/Johannes-Berggren/publish/internal/runner"
	"github.com/Johannes-Berggren/publish/internal/ui"
)

// App carries the process environment so commands can run against buffers
// and fakes in tests.
type App struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Runner replaces the os/exec runner when set.
	Runner runner.Runner
	// Inspect replaces go-git repository inspection when set.
	Inspect publish.InspectFunc
}

type rootOptions struct {
	configFile  string
	verbose     bool
	quiet       bool
	dryRun      bool
	interactive bool
}

func newRootCmd(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "publish <commit_message>",
		Short: "Build the blog and push the site and its source",
		Long: `publish runs the static site generator, then commits and pushes the
generated output repository and the source repository with the same message.

Put -- before a message that starts with a dash or is the word "config":

  publish -- "-fix typo"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var message string
			if len(args) > 0 {
				message = args[0]
			}
			return runPublish(cmd, app, opts, message)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default ./"+config.FileName+")")
	flags.String("build-command", "", "static site build tool (default hugo)")
	flags.String("output-dir", "", "generated site repository (default public)")
	flags.String("output-remote", "", "remote for the output repository (default origin)")
	flags.String("output-branch", "", "branch for the output repository (default: current branch)")
	flags.String("site-remote", "", "remote for the source repository (default origin)")
	flags.String("site-branch", "", "branch for the source repository (default: current branch)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "hide tool output unless a step fails")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the commands without running them")
	rootCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for the commit message when none is given")

	rootCmd.AddCommand(newConfigCmd(app, opts))
	return rootCmd
}

func runPublish(cmd *cobra.Command, app *App, opts *rootOptions, message string) error {
	ctx := cmd.Context()

	if message == "" && opts.interactive {
		pending, err := git.New(app.Dir, app.runner()).WorkingTreeStatus(ctx)
		if err != nil {
			slog.Debug("Could not read working tree status", logfields.Dir(app.Dir), logfields.Error(err))
		}
		entered, err := ui.PromptMessage(app.Stdin, app.Stdout, pending)
		if err != nil {
			return err
		}
		message = entered
	}

	if err := publish.ValidateMessage(message); err != nil {
		return err
	}

	cfg, err := config.Load(config.Options{Dir: app.Dir, File: opts.configFile, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	setupLogging(app.Stderr, opts.verbose)
	slog.Debug("Loaded configuration", logfields.Dir(app.Dir), logfields.Command(cfg.Build.Command))

	r := app.Runner
	if r == nil {
		r = &runner.ExecRunner{Stdout: app.Stdout, Stderr: app.Stderr, Capture: opts.quiet}
	}

	p := publish.New(publish.Options{
		Dir:      app.Dir,
		Config:   cfg,
		Runner:   r,
		Reporter: ui.NewReporter(app.Stdout, opts.quiet),
		Inspect:  app.Inspect,
	})

	if opts.dryRun {
		steps, err := p.Plan(message)
		if err != nil {
			return err
		}
		ui.PrintPlan(app.Stdout, steps)
		return nil
	}

	res, err := p.Publish(ctx, message)
	if err != nil {
		return err
	}
	ui.PrintSummary(app.Stdout, res)
	return nil
}

func (a *App) runner() runner.Runner {
	if a.Runner != nil {
		return a.Runner
	}
	return &runner.ExecRunner{Stdout: io.Discard, Stderr: io.Discard}
}

// setupLogging installs a text slog handler on w. The level is warn unless
// --verbose or PUBLISH_LOG_LEVEL says otherwise.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if env := os.Getenv(config.EnvPrefix + "_LOG_LEVEL"); env != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.ToUpper(env))); err == nil {
			level = l
		}
	}
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With(logfields.RunID(uuid.NewString())))
}

// Run executes the command line args against app and returns the process
// exit status.
func Run(ctx context.Context, app *App, args []string) int {
	if app.Dir == "" {
		app.Dir = "."
	}
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	rootCmd := newRootCmd(app)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(app.Stdin)
	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if errors.Is(err, publish.ErrEmptyMessage) {
		fmt.Fprintln(app.Stderr, publish.EmptyMessageDiagnostic)
		return publish.ExitCode(err)
	}

	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) && exitErr.Output != "" {
		fmt.Fprint(app.Stderr, exitErr.Output)
	}
	fmt.Fprintf(app.Stderr, "Error: %v\n", err)
	return publish.ExitCode(err)
}

func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return Run(ctx, &App{
		Dir:    wd,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, os.Args[1:])
}
