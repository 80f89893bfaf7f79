package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/agentx-labs/skilltool/internal/branding"
	"github.com/agentx-labs/skilltool/internal/config"
	"github.com/agentx-labs/skilltool/internal/connect"
	"github.com/agentx-labs/skilltool/internal/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// buildInfo is injected via ldflags.
type buildInfo struct {
	version string
	commit  string
	date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose bool
	noColor bool
}

// usageError marks a flag parsing failure so the usage text is printed with it.
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newRootCmd(info buildInfo) *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` registers skill manifests with an assistant bot by appending them
to the assistant's skills configuration file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Load()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log each registration step to stderr")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd: cmd, err: err}
	})

	rootCmd.AddCommand(newConnectCmd(g))
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newValidateCmd(g))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd(info))

	return rootCmd
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(buildInfo{version: version, commit: commit, date: date})
	return execute(rootCmd, os.Args[1:])
}

// execute runs rootCmd with args and prints any failure to its error stream.
func execute(rootCmd *cobra.Command, args []string) error {
	rootCmd.SetArgs(args)
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		reportError(cmd, err)
	}
	return err
}

func reportError(cmd *cobra.Command, err error) {
	noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color")
	p := report.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), !noColor && !config.NoColor())

	var (
		dup   *connect.DuplicateSkillError
		usage *usageError
	)
	switch {
	case errors.As(err, &dup):
		p.Notice(err.Error())
	case errors.As(err, &usage):
		p.Error(fmt.Sprintf("Unknown arguments: %v", usage.err))
		fmt.Fprint(cmd.ErrOrStderr(), usage.cmd.UsageString())
	default:
		p.Error(err.Error())
	}
}

func (g *globalFlags) printer(cmd *cobra.Command) *report.Printer {
	return report.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), !g.noColor && !config.NoColor())
}

// logger returns a console logger on stderr when --verbose is set and a
// disabled logger otherwise.
func (g *globalFlags) logger(cmd *cobra.Command) zerolog.Logger {
	if !g.verbose {
		return zerolog.Nop()
	}
	return newConsoleLogger(cmd.ErrOrStderr(), g.noColor || config.NoColor())
}

func newConsoleLogger(w io.Writer, noColor bool) zerolog.Logger {
	return zerolog.New(
		zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: noColor},
	).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
