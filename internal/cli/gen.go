package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mithrel/domid/internal/catalog"
)

// ErrStale is returned by gen --check when the generated file differs.
var ErrStale = errors.New("generated catalog is out of date")

func newGenCmd() *cobra.Command {
	var in, out, pkg, typ string
	var check bool
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a Go id catalog from a YAML list of ids",
		Long: `Reads a catalog file such as

  package: ids
  ids:
    - language-selector
    - preview-download-svg-button

and writes a Go enum with one constant per id (LanguageSelector,
PreviewDownloadSvgButton). Catalog constants are accepted by domid lint
wherever an id is required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("read catalog: %w", err)
			}
			c, err := catalog.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			if pkg != "" {
				c.Package = pkg
			} else if c.Package == "" {
				c.Package = app.Cfg.GetString("gen.package")
			}
			if typ != "" {
				c.Type = typ
			} else if c.Type == "" {
				c.Type = app.Cfg.GetString("gen.type")
			}

			src, err := catalog.Generate(c)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			app.Log.Debug("catalog generated", zap.String("in", in), zap.Int("ids", len(c.IDs)), zap.String("fingerprint", c.Fingerprint()))

			if out == "" {
				_, err := cmd.OutOrStdout().Write(src)
				return err
			}
			if check {
				current, err := os.ReadFile(out)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				diff, err := catalog.Diff(out, current, src)
				if err != nil {
					return err
				}
				if diff != "" {
					_, _ = fmt.Fprint(cmd.OutOrStdout(), diff)
					return fmt.Errorf("%w: %s (run domid gen without --check)", ErrStale, out)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", out)
				return nil
			}
			if err := os.WriteFile(out, src, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d ids, fingerprint %s)\n", out, len(c.IDs), c.Fingerprint())
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "ids.yaml", "catalog file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output Go file (default stdout)")
	cmd.Flags().StringVar(&pkg, "package", "", "package name (overrides the catalog file)")
	cmd.Flags().StringVar(&typ, "type", "", "type name (overrides the catalog file)")
	cmd.Flags().BoolVar(&check, "check", false, "fail with a diff when --out is not up to date")
	return cmd
}
