package config

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/mithrel/domid/internal/lint/idsink"
)

// CheckConfigValidity reports every invalid option at once.
func CheckConfigValidity(v *viper.Viper) error {
	var result *multierror.Error
	add := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	if c := v.GetString("color"); c != "" && !slices.Contains([]string{"auto", "always", "never"}, c) {
		add("color must be auto, always or never (got %q)", c)
	}
	if lvl := v.GetString("log.level"); lvl != "" {
		if _, err := zapcore.ParseLevel(lvl); err != nil {
			add("log.level %q is not a log level", lvl)
		}
	}
	if f := v.GetString("log.format"); f != "" && f != "console" && f != "json" {
		add("log.format must be console or json (got %q)", f)
	}
	if o := v.GetString("lint.output"); o != "" && !slices.Contains([]string{"plain", "json", "ndjson"}, o) {
		add("lint.output must be plain, json or ndjson (got %q)", o)
	}
	for _, s := range v.GetStringSlice("lint.sinks") {
		if _, err := idsink.ParseSink(s); err != nil {
			add("lint.sinks: %v", err)
		}
	}
	for _, r := range Rules {
		key := SeverityKey(r)
		if s := strings.ToLower(v.GetString(key)); s != "" && s != "deny" && s != "warn" && s != "allow" {
			add("%s must be deny, warn or allow (got %q)", key, s)
		}
	}
	if p := v.GetString("gen.package"); v.IsSet("gen.package") && !token.IsIdentifier(p) {
		add("gen.package %q is not a valid package name", p)
	}
	return result.ErrorOrNil()
}
