package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mithrel/domid/internal/config"
	"github.com/mithrel/domid/internal/lint"
)

func newConfigRuleCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "rule <rule> <deny|warn|allow|default>",
		Short: "Set the severity of a lint rule in the config file",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return lint.RuleNames(), cobra.ShellCompDirectiveNoFileComp
			case 1:
				return []string{"deny", "warn", "allow", "default"}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, level := args[0], args[1]
			if _, ok := lint.Rule(rule); !ok {
				return fmt.Errorf("unknown rule %q", rule)
			}
			if path == "" {
				path = getApp(cmd).Cfg.ConfigFileUsed()
			}
			if path == "" {
				path = config.DefaultConfigPath()
			}

			existing := ""
			if data, err := os.ReadFile(path); err == nil {
				existing = string(data)
			} else if !os.IsNotExist(err) {
				return err
			}

			var updated string
			if level == "default" {
				var removed bool
				updated, removed = config.DeleteRuleConfig(existing, rule)
				if !removed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s already uses the default severity\n", rule)
					return nil
				}
			} else {
				sev, err := lint.ParseSeverity(level)
				if err != nil {
					return err
				}
				updated, _ = config.UpsertRuleConfig(existing, rule, map[string]any{"severity": string(sev)})
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s = %s\n", path, config.SeverityKey(rule), level)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "config file to edit (default: the loaded config or the standard location)")
	return cmd
}
