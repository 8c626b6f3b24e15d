package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/jadzia/internal/build"
)

var rootCmd = &cobra.Command{
	Use:   "jadzia",
	Short: "Compile YAML and JSON rule files into CSS",
	Long: `Rule files describe stylesheets as nested mappings: selectors nest,
"&" attaches to the parent selector, @media blocks hoist, and property
names and numbers are converted to CSS.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		logger = newLogger(
			getBoolWithFallback("verbose", "verbose", false),
			getBoolWithFallback("quiet", "quiet", false),
			build.ShouldUseColors(colorMode(), os.Stderr),
		)
		return nil
	},
	// Default behavior: build when no subcommand is given.
	RunE:          runBuild,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.BoolP("quiet", "q", false, "Only print errors")
	pf.String("color", "auto", "Color output: auto|always|never")
	pf.String("config", defaultConfigPath, "Config file path")

	// Compiler options
	pf.String("unit", "px", "Unit appended to bare numbers")
	pf.Bool("sort", false, "Sort selectors by weight")
	pf.Int("indent", 4, "Spaces per nesting level in CSS output")
	pf.StringSlice("customs", nil, "Property names emitted as custom properties (--name)")
	pf.StringArray("var", nil, "Variable for !expr values, as name=value (repeatable, commas are kept)")

	addBuildFlags(rootCmd)

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func colorMode() string {
	return getStringWithFallback("color", "color", "auto")
}
