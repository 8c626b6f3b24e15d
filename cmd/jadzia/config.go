package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/yacobolo/jadzia"
	"github.com/yacobolo/jadzia/internal/build"
)

const defaultConfigPath = ".jadzia.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	k = koanf.New(".")

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	fs := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(fs, ".", nil, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		// StringArray values must not be re-split on commas
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			return f.Name, sv.GetSlice()
		}
		return f.Name, posflag.FlagVal(fs, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (JADZIA_* prefix)
	if err := k.Load(env.Provider("JADZIA_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key. The first underscore
// separates the section, the rest become dashes:
// JADZIA_BUILD_OUTPUT_DIR -> build.output-dir, JADZIA_VERBOSE -> verbose.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "JADZIA_"))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + strings.ReplaceAll(rest, "_", "-")
}

// buildBuildConfig constructs the build package Config from koanf state.
func buildBuildConfig() (build.Config, error) {
	format, err := build.ParseFormat(getStringWithFallback("format", "build.format", "css"))
	if err != nil {
		return build.Config{}, err
	}

	opts, err := buildOptions()
	if err != nil {
		return build.Config{}, err
	}

	config := build.Config{
		SourceDir: getStringWithFallback("source", "build.source", "."),
		OutputDir: getStringWithFallback("output-dir", "build.output-dir", ""),
		Format:    format,
		Check:     getBoolWithFallback("check", "build.check", false),
		Bundle:    getStringWithFallback("bundle", "build.bundle", ""),
		Options:   opts,
		Logger:    logger,
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("build.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = build.DefaultIncludes
	}

	return config, nil
}

// buildOptions constructs the compiler options from koanf state.
func buildOptions() ([]jadzia.Option, error) {
	opts := []jadzia.Option{
		jadzia.WithUnit(getStringWithFallback("unit", "options.unit", "px")),
		jadzia.WithSort(getBoolWithFallback("sort", "options.sort", false)),
		jadzia.WithIndent(getIntWithFallback("indent", "options.indent", 4)),
	}

	if customs := k.Strings("customs"); len(customs) > 0 {
		opts = append(opts, jadzia.WithCustoms(customs...))
	} else if customs := k.Strings("options.customs"); len(customs) > 0 {
		opts = append(opts, jadzia.WithCustoms(customs...))
	}

	// Config file vars first so --var wins
	vars := k.Cut("options.vars").Raw()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		opts = append(opts, jadzia.WithVar(name, vars[name]))
	}

	for _, assignment := range k.Strings("var") {
		name, raw, ok := strings.Cut(assignment, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --var %q (want name=value)", assignment)
		}
		opts = append(opts, jadzia.WithVar(strings.TrimSpace(name), parseVar(raw)))
	}

	return opts, nil
}

// parseVar reads a command line value as a YAML scalar, so numbers and
// booleans keep their type in expressions.
func parseVar(raw string) any {
	var v any
	if err := yamlv3.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	return v
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
