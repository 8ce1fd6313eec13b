// Package cli provides the command-line interface for git-eq.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/git-eq/internal/constants"
	"github.com/mrz1836/git-eq/internal/earthquake"
	"github.com/mrz1836/git-eq/internal/errors"
	"github.com/mrz1836/git-eq/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// saveResponse is the --output json rendering of a successful run.
type saveResponse struct {
	Branch    string `json:"branch"`
	Remote    string `json:"remote"`
	Committed bool   `json:"committed"`
}

// newRootCmd creates the git-eq command. It has no subcommands: the root
// command is the emergency save itself.
func newRootCmd(flags *GlobalFlags, info BuildInfo, svc *services) *cobra.Command {
	v := viper.New()
	logger := zerolog.Nop()
	var logCloser io.Closer

	cmd := &cobra.Command{
		Use:   "git-eq [message]",
		Short: "Save your work to a new remote branch, right now",
		Long: `git-eq moves everything in the working copy onto a new branch named
earthquake/<branch>-<email>-<unix time>, commits it if anything is
outstanding, and pushes it with upstream tracking.

The optional argument is the commit message. Without it the message is
"` + constants.DefaultCommitMessage + `". A message that starts with a dash
must follow --, as in: git eq -- "-wip"`,
		Version: formatVersion(info),
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd, flags); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			tui.CheckNoColor()
			logger, logCloser = svc.initLogger(flags.Verbose, flags.Quiet)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = logCloser.Close() }()
			return runEarthquake(cmd, flags, svc, logger, args)
		},
		// Errors are reported by execute, in the selected output format.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewExitCode2Error(fmt.Errorf("%w: %w", errors.ErrUsage, err))
	})

	return cmd
}

// runEarthquake loads settings, builds the runner and runs the save.
func runEarthquake(cmd *cobra.Command, flags *GlobalFlags, svc *services, logger zerolog.Logger, args []string) error {
	ctx := logger.WithContext(cmd.Context())
	out := tui.NewOutput(cmd.OutOrStdout(), flags.Output)

	message := commitMessage(args, out, logger)

	cfg, err := svc.loadConfig(ctx)
	if err != nil {
		return err
	}

	// git's own progress must not interleave with the JSON document.
	gitStdout := cmd.OutOrStdout()
	if flags.Output == OutputJSON {
		gitStdout = cmd.ErrOrStderr()
	}
	runner := svc.newRunner(cfg, svc.workDir, logger, gitStdout, cmd.ErrOrStderr())

	result, err := earthquake.NewOrchestrator(runner, svc.clock, logger).
		Run(ctx, earthquake.Config{CommitMessage: message})
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		return out.JSON(saveResponse{
			Branch:    result.Branch.String(),
			Remote:    result.Remote,
			Committed: result.Committed,
		})
	}
	if !result.Committed {
		out.Info(fmt.Sprintf("Nothing to commit; pushed the current state as %s.", result.Branch))
	}
	out.Success(constants.SuccessMessage)
	return nil
}

// commitMessage returns the first argument, or the default message when
// there is none. Further arguments are ignored with a warning.
func commitMessage(args []string, out tui.Output, logger zerolog.Logger) string {
	if len(args) == 0 {
		return constants.DefaultCommitMessage
	}
	if extra := args[1:]; len(extra) > 0 {
		logger.Warn().Strs("ignored", extra).Msg("extra arguments ignored")
		out.Warning(fmt.Sprintf("Only the first argument is used as the commit message; ignoring %s. Quote the message to include spaces.",
			strings.Join(extra, " ")))
	}
	return args[0]
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// execute runs cmd and reports a failure in the selected output format:
// JSON on stdout for --output json, styled text on stderr otherwise.
func execute(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	if flags.Output == OutputJSON {
		tui.NewJSONOutput(cmd.OutOrStdout()).Error(err)
	} else {
		tui.NewTTYOutput(cmd.ErrOrStderr()).Error(err)
	}
	return err
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info, defaultServices())
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	return execute(ctx, cmd, flags)
}
