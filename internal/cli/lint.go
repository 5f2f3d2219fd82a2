package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mithrel/domid/internal/config"
	"github.com/mithrel/domid/internal/lint"
	"github.com/mithrel/domid/internal/present"
)

// ErrDenied is returned by lint when a finding has severity deny.
var ErrDenied = errors.New("lint failed: findings with severity deny")

func newLintCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "lint [packages...]",
		Short: "Check that id attributes only receive allocated ids",
		Long: `Runs the literalid and ttid rules over Go packages (default ./...) and
over the templates configured in lint.templates or passed with --templates.

With no package arguments ./... is linted, templates or not.
-A, -W and -D may be repeated; when one rule is named by several of them
the strictest wins (deny over warn over allow).

Exits non-zero when any finding has severity deny.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			applyFlagOverrides(cmd, app.Cfg, map[string]string{
				"output":    "lint.output",
				"templates": "lint.templates",
				"sinks":     "lint.sinks",
				"catalog":   "lint.catalog",
				"tests":     "lint.tests",
			})
			if err := applySeverityFlags(cmd, app.Cfg); err != nil {
				return err
			}
			if err := config.CheckConfigValidity(app.Cfg); err != nil {
				return err
			}

			opts := app.LintOptions(dir, args)
			if len(opts.Patterns) == 0 {
				opts.Patterns = []string{"./..."}
			}
			findings, err := app.Linter.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			mode, _ := present.ParseMode(app.Cfg.GetString("lint.output"))
			out := cmd.OutOrStdout()
			popts := present.Options{
				Mode:  mode,
				Color: present.ColorEnabled(app.Cfg.GetString("color"), out),
			}
			if err := present.RenderFindings(out, findings, popts); err != nil {
				return err
			}
			if lint.HasDeny(findings) {
				return ErrDenied
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "C", "", "directory to load packages from")
	cmd.Flags().StringP("output", "o", "plain", "output format: plain, json or ndjson")
	cmd.Flags().StringSlice("templates", nil, "template files, directories or globs to check")
	cmd.Flags().StringSlice("sinks", nil, "extra id sinks as import/path.Func[:argIndex]")
	cmd.Flags().String("catalog", "", "id catalog used to suggest replacements for literals")
	cmd.Flags().Bool("tests", false, "also check _test.go files")
	cmd.Flags().StringSliceP("deny", "D", nil, "rules reported with severity deny")
	cmd.Flags().StringSliceP("warn", "W", nil, "rules reported with severity warn")
	cmd.Flags().StringSliceP("allow", "A", nil, "rules that are not reported")
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions([]string{"plain", "json", "ndjson"}, cobra.ShellCompDirectiveNoFileComp))
	for _, sf := range severityFlags {
		_ = cmd.RegisterFlagCompletionFunc(sf.flag, cobra.FixedCompletions(lint.RuleNames(), cobra.ShellCompDirectiveNoFileComp))
	}
	return cmd
}
