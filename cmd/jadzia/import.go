package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/jadzia/internal/rulefile"
)

var importCmd = &cobra.Command{
	Use:   "import <file.css>",
	Short: "Convert a CSS file into a YAML rule file",
	Long: `Parse an existing stylesheet and print it as a rule file. Selector lists
stay comma-separated keys, block at-rules nest, and repeated selectors are
merged. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := importStylesheet(cmd, args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		for _, w := range result.Warnings {
			logger.Warn(w)
		}
		logger.Debug("Imported stylesheet",
			zap.String("file", args[0]),
			zap.Int("rules", result.Rules.Len()))

		out, err := rulefile.Encode(result.Rules)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, output, out)
	},
}

func init() {
	importCmd.Flags().StringP("output", "o", "", "Write the rule file here instead of stdout")
}
