package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .jadzia.yaml config file",
	Long:  `Create a .jadzia.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# jadzia configuration
# Environment variables override this file: JADZIA_BUILD_OUTPUT_DIR=dist

verbose: false
quiet: false
color: auto              # auto | always | never

# Build settings
build:
  source: styles
  include:
    - "**/*.yaml"
    - "**/*.yml"
    - "**/*.json"
  output-dir: dist       # empty writes next to each rule file
  format: css            # css | json | yaml
  bundle: ""             # e.g. dist/site.css to compile everything into one file
  check: false

# Compiler options
options:
  unit: px
  sort: false
  indent: 4
  customs: []            # properties written as --name
  vars: {}               # values for !expr, e.g. brand: teal
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
