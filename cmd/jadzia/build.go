package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/jadzia/internal/build"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile rule files into CSS",
	Long: `Compile every rule file matched by the include patterns. Each file is
written next to its source, or mirrored into --output-dir, or all files are
compiled into a single --bundle.`,
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("source", ".", "Source directory with rule files")
	f.StringSlice("include", nil, "Glob patterns for rule files, relative to --source")
	f.String("output-dir", "", "Output directory (default: next to each rule file)")
	f.String("format", "css", "Output format: css|json|yaml")
	f.String("bundle", "", "Compile all rule files into this single file")
	f.Bool("check", false, "Fail if outputs are out of date instead of writing them")
	f.BoolP("watch", "w", false, "Rebuild when rule files change")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	config, err := buildBuildConfig()
	if err != nil {
		return err
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	reporter := build.NewReporter(cmd.OutOrStdout(), build.ShouldUseColors(colorMode(), stdoutFile(cmd)))

	report := func(result *build.Result) {
		if quiet {
			return
		}
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result, config.Check)
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return build.Watch(ctx, config, func(result *build.Result, err error) {
			if result == nil {
				logger.Error("Build failed", zap.Error(err))
				return
			}
			report(result)
		})
	}

	result, err := build.Build(config)
	if result == nil {
		return fmt.Errorf("build failed: %w", err)
	}
	report(result)

	if err != nil {
		failed := len(multierr.Errors(err))
		logger.Debug("Build errors", zap.Errors("errors", multierr.Errors(err)))
		if config.Check && result.Stale() > 0 {
			return fmt.Errorf("check failed: %d of %d outputs out of date", result.Stale(), len(result.Outputs))
		}
		return fmt.Errorf("build failed: %d %s", failed, plural(failed, "problem", "problems"))
	}
	return nil
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
