package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/genecanvas/internal/util"
	"github.com/yumyai/genecanvas/logger"
	"github.com/yumyai/genecanvas/pkg/db"
	"github.com/yumyai/genecanvas/pkg/render"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalog",
		Short:   "Manage the part-template catalog",
		Aliases: []string{"templates"},
	}
	cmd.AddCommand(newCatalogImportCmd(a), newCatalogListCmd(a))
	return cmd
}

func newCatalogImportCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Add templates from YAML seed files or FASTA files",
		Long: `YAML files hold a "templates:" list. FASTA files add one template per
record, all in the category given by --category.`,
		Example: `  genecanvas catalog import parts.yaml
  genecanvas catalog import --category gene reporters.fa`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := db.Open(a.cfg.CatalogPath)
			if err != nil {
				return err
			}
			defer catalog.Close()

			total := 0
			for _, path := range args {
				n, err := importFile(cmd, catalog, path, category)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				logger.Info("Imported templates", zap.String("file", path), zap.Int("count", n))
				total += n
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d template(s) into %s\n", total, a.cfg.CatalogPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category for FASTA records")
	return cmd
}

func importFile(cmd *cobra.Command, catalog *db.Catalog, path, category string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if util.IsYAML(path) {
		return catalog.ImportYAML(cmd.Context(), f)
	}
	if strings.TrimSpace(category) == "" {
		return 0, fmt.Errorf("FASTA import needs --category")
	}
	return catalog.ImportFASTA(cmd.Context(), f, category)
}

func newCatalogListCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List templates, optionally of one category",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.openExistingCatalog()
			if err != nil {
				return err
			}
			defer catalog.Close()

			templates, err := catalog.Templates(cmd.Context(), category)
			if err != nil {
				return err
			}
			return render.RenderTemplates(cmd.OutOrStdout(), templates)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list this category")
	return cmd
}
