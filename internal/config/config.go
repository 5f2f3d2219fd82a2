package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Rules are the lint rules that carry a severity option.
var Rules = []string{"literalid", "ttid"}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// SetConfigFile upstream wins; these paths are fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("domid")
		v.SetConfigType("toml")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "domid"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "domid"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing {
			return err
		}
	}

	// DOMID_LINT_OUTPUT overrides lint.output, and so on.
	v.SetEnvPrefix("domid")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Comma-separated env values for list options.
	for _, key := range []string{"lint.sinks", "lint.templates"} {
		if s := strings.TrimSpace(os.Getenv("DOMID_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_")))); s != "" {
			v.Set(key, splitList(s))
		}
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DefaultConfigPath resolves the standard domid.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "domid", "domid.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// SeverityKey is the option holding the severity of rule.
func SeverityKey(rule string) string {
	return "lint.rules." + rule + ".severity"
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	opts := []ConfigOption{
		{Key: "color", Default: "auto", Comment: "Colour findings: auto, always or never"},

		{Key: "log.level", Default: "warn", Comment: "Log level: debug, info, warn or error"},
		{Key: "log.format", Default: "console", Comment: "Log encoding: console or json"},

		{Key: "lint.output", Default: "plain", Comment: "Findings format: plain, json or ndjson"},
		{Key: "lint.tests", Default: false, Comment: "Also lint _test.go files"},
		{Key: "lint.sinks", Default: []string{}, Comment: "Extra id sinks as import/path.Func[:argIndex]"},
		{Key: "lint.templates", Default: []string{}, Comment: "Template files, directories or globs to scan for id attributes"},
		{Key: "lint.catalog", Default: "", Comment: "Id catalog (YAML) used to suggest replacements for literal ids"},

		{Key: "gen.package", Default: "ids", Comment: "Package name for generated catalogs when the catalog file names none"},
		{Key: "gen.type", Default: "Ids", Comment: "Type name for generated catalogs when the catalog file names none"},
	}
	for _, r := range Rules {
		opts = append(opts, ConfigOption{Key: SeverityKey(r), Default: "deny", Comment: "Severity of " + r + ": deny, warn or allow"})
	}
	return opts
}
