package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/domid/internal/config"
	"github.com/mithrel/domid/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "domid",
		Short:         "domid: unique DOM element ids for Go web UIs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			applyFlagOverrides(cmd, v, map[string]string{
				"color":     "color",
				"log-level": "log.level",
			})
			app, err := wire.BuildApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			ctx := context.WithValue(cmd.Context(), appKey, app)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app, ok := cmd.Context().Value(appKey).(*wire.App); ok {
				_ = app.Log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to domid.toml")
	cmd.PersistentFlags().String("color", "auto", "colour output: auto, always or never")
	cmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(newLintCmd())
	cmd.AddCommand(newGenCmd())
	cmd.AddCommand(newExplainCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}
