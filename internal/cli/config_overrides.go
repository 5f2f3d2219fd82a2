package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/domid/internal/config"
	"github.com/mithrel/domid/internal/lint"
)

// severityFlags are applied in this order, so the strictest flag naming a
// rule wins.
var severityFlags = []struct {
	flag string
	sev  lint.Severity
}{
	{"allow", lint.SeverityAllow},
	{"warn", lint.SeverityWarn},
	{"deny", lint.SeverityDeny},
}

// applyFlagOverrides copies every changed flag in keys (flag name to config
// key) onto v.
func applyFlagOverrides(cmd *cobra.Command, v *viper.Viper, keys map[string]string) {
	for flagName, key := range keys {
		if f := cmd.Flags().Lookup(flagName); f != nil && f.Changed {
			setFromFlag(cmd, v, flagName, key)
		}
	}
}

// applySeverityFlags sets lint.rules.<rule>.severity for every rule named by
// -A, -W or -D.
func applySeverityFlags(cmd *cobra.Command, v *viper.Viper) error {
	for _, sf := range severityFlags {
		f := cmd.Flags().Lookup(sf.flag)
		if f == nil || !f.Changed {
			continue
		}
		rules, err := cmd.Flags().GetStringSlice(sf.flag)
		if err != nil {
			return err
		}
		for _, r := range rules {
			if _, ok := lint.Rule(r); !ok {
				return fmt.Errorf("--%s: unknown rule %q (known: %v)", sf.flag, r, lint.RuleNames())
			}
			v.Set(config.SeverityKey(r), string(sf.sev))
		}
	}
	return nil
}

func setFromFlag(cmd *cobra.Command, v *viper.Viper, flagName, key string) {
	switch cmd.Flags().Lookup(flagName).Value.Type() {
	case "bool":
		if val, err := cmd.Flags().GetBool(flagName); err == nil {
			v.Set(key, val)
		}
	case "stringSlice":
		if val, err := cmd.Flags().GetStringSlice(flagName); err == nil {
			v.Set(key, val)
		}
	default:
		if val, err := cmd.Flags().GetString(flagName); err == nil {
			v.Set(key, val)
		}
	}
}
