package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/domid/internal/lint"
	"github.com/mithrel/domid/internal/present"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "explain [rule]",
		Short:     "Show the documentation of a lint rule",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: lint.RuleNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, a := range lint.Analyzers() {
					summary, _, _ := strings.Cut(a.Doc, "\n")
					_, _ = fmt.Fprintf(out, "%-10s %s\n", a.Name, summary)
				}
				return nil
			}
			a, ok := lint.Rule(args[0])
			if !ok {
				return fmt.Errorf("unknown rule %q (known: %s)", args[0], strings.Join(lint.RuleNames(), ", "))
			}
			opts := present.Options{Color: present.ColorEnabled(app.Cfg.GetString("color"), out)}
			return withPager(cmd.Context(), out, cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderRuleDoc(w, a.Name, a.Doc, opts)
			})
		},
	}
	return cmd
}
