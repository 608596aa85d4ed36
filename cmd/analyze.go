package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yumyai/genecanvas/internal/util"
	"github.com/yumyai/genecanvas/logger"
	"github.com/yumyai/genecanvas/pkg/compose"
	"github.com/yumyai/genecanvas/pkg/db"
	"github.com/yumyai/genecanvas/pkg/handler"
	"github.com/yumyai/genecanvas/pkg/handler/request"
	"github.com/yumyai/genecanvas/pkg/render"
)

// ErrInvalidOperons is returned by analyze --strict-operons when any operon
// has warnings.
var ErrInvalidOperons = errors.New("design has operons with warnings")

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		asJSON        bool
		failOnWarning bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [design.yaml|design.json]",
		Short: "Detect and validate the operons of a saved design",
		Long: `Reads a saved design (background plus parts with their boundaries),
lays it out and reports every operon with its warnings. Parts may name a
template_id from the catalog.`,
		Example: "  genecanvas analyze circuits/repressilator.yaml --json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readDesign(args[0])
			if err != nil {
				return err
			}
			if req.Name == "" {
				req.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			var lookup db.TemplateLookup
			if needsCatalog(req) {
				catalog, err := a.openExistingCatalog()
				if err != nil {
					return err
				}
				defer catalog.Close()
				lookup = catalog
			}

			editor, err := handler.RestoreDesign(cmd.Context(), lookup, req,
				compose.WithLogger(logger.L()),
				compose.WithStrictIntegrity(a.cfg.Strict),
			)
			if err != nil {
				return fmt.Errorf("restore %s: %w", args[0], err)
			}

			analysis := handler.Analyze(req.Name, editor)
			logger.Debug("Analyzed design",
				zap.String("design", req.Name),
				zap.Int("operons", analysis.Summary.Operons),
				zap.Int("warnings", analysis.Summary.Warnings),
			)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(analysis); err != nil {
					return err
				}
			} else if err := render.RenderReport(out, render.NewReport(req.Name, editor)); err != nil {
				return err
			}

			if failOnWarning && analysis.Summary.Invalid > 0 {
				return fmt.Errorf("%w: %d of %d", ErrInvalidOperons, analysis.Summary.Invalid, analysis.Summary.Operons)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	cmd.Flags().BoolVar(&failOnWarning, "strict-operons", false, "exit with an error when any operon has warnings")
	return cmd
}

// readDesign decodes a design file, YAML or JSON by extension.
func readDesign(path string) (request.CreateDesignRequest, error) {
	var req request.CreateDesignRequest

	raw, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}
	if util.IsYAML(path) {
		err = yaml.Unmarshal(raw, &req)
	} else {
		err = json.Unmarshal(raw, &req)
	}
	if err != nil {
		return req, fmt.Errorf("decode %s: %w", path, err)
	}
	return req, nil
}

func needsCatalog(req request.CreateDesignRequest) bool {
	for _, p := range req.Parts {
		if p.TemplateID != "" {
			return true
		}
	}
	return false
}

// openExistingCatalog opens the configured catalog without creating it.
func (a *app) openExistingCatalog() (*db.Catalog, error) {
	if _, err := os.Stat(a.cfg.CatalogPath); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", a.cfg.CatalogPath, err)
	}
	return db.Open(a.cfg.CatalogPath)
}
