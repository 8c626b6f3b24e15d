package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/jadzia"
)

var formatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "Print a canonical object as CSS",
	Long: `Format a canonical object, as written by "build --format json|yaml",
as CSS without compiling it again. Keys are final selectors and values are
property strings. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadRules(cmd, args[0])
		if err != nil {
			return err
		}

		obj, ok := tree.(*jadzia.Map)
		if !ok && tree != nil {
			return fmt.Errorf("%s: expected a mapping of selectors, got %s", args[0], jadzia.Classify(tree))
		}

		opts, err := buildOptions()
		if err != nil {
			return err
		}
		if getBoolWithFallback("sort", "options.sort", false) {
			obj = jadzia.Sort(obj)
		}

		css, err := jadzia.Format(obj, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if css != "" {
			css += "\n"
		}

		output, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, output, []byte(css))
	},
}

func init() {
	formatCmd.Flags().StringP("output", "o", "", "Write CSS here instead of stdout")
}
