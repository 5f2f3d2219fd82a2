package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/domid/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage domid.toml",
	}
	cmd.AddCommand(newConfigGenerateCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigRuleCmd())
	return cmd
}

// writeMode says what config generate does with an existing file.
type writeMode int

const (
	writeCreate writeMode = iota
	writeOverwrite
	writeUpdate
)

func newConfigGenerateCmd() *cobra.Command {
	var out string
	var overwrite, update bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a domid.toml with every option at its default",
		Long: `Writes domid.toml to --output (default: the per-user config location).
An existing file is left alone unless --overwrite replaces it or --update
adds the options it lacks; both keep a .bak copy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := writeCreate
			switch {
			case overwrite && update:
				return fmt.Errorf("--overwrite and --update are mutually exclusive")
			case overwrite:
				mode = writeOverwrite
			case update:
				mode = writeUpdate
			}
			if out == "" {
				out = config.DefaultConfigPath()
			}
			return generateConfig(cmd.OutOrStdout(), out, mode)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "path of the domid.toml to write")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing file (keeps a backup)")
	cmd.Flags().BoolVar(&update, "update", false, "add missing options to an existing file (keeps a backup)")
	return cmd
}

func generateConfig(w io.Writer, path string, mode writeMode) error {
	current, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if exists && mode == writeCreate {
		return fmt.Errorf("%s already exists; pass --update to add missing options or --overwrite to replace it", path)
	}

	content := config.RenderDefaultTOML()
	if exists && mode == writeUpdate {
		updated, changed := config.UpdateTOML(string(current))
		if !changed {
			_, _ = fmt.Fprintf(w, "%s is up to date\n", path)
			return nil
		}
		content = updated
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if exists {
		backup, err := backupFile(path, current)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Backup: %s\n", backup)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

// backupFile stores data next to path as path.bak, or a timestamped name
// when that is taken.
func backupFile(path string, data []byte) (string, error) {
	backup := path + ".bak"
	if _, err := os.Stat(backup); err == nil {
		backup = path + ".bak-" + time.Now().Format("20060102-150405")
	}
	return backup, os.WriteFile(backup, data, 0o600)
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Prints every option after defaults, domid.toml, DOMID_* variables and global flags were applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), config.RenderEffectiveTOML(getApp(cmd).Cfg))
			return err
		},
	}
}
