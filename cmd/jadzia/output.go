package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/jadzia"
	"github.com/yacobolo/jadzia/internal/cssimport"
	"github.com/yacobolo/jadzia/internal/rulefile"
)

// stdoutFile returns the command's output as a file for terminal detection,
// or os.Stdout when output was redirected to something else.
func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return os.Stdout
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// loadRules decodes the rule file at path, or stdin when path is "-".
func loadRules(cmd *cobra.Command, path string) (jadzia.Node, error) {
	if path != "-" {
		return rulefile.LoadFile(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return rulefile.Decode(data, path)
}

// importStylesheet parses the stylesheet at path, or stdin when path is "-".
func importStylesheet(cmd *cobra.Command, path string) (*cssimport.Result, error) {
	if path != "-" {
		return cssimport.ParseFile(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return cssimport.ParseCSS(string(data), path)
}
