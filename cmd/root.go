// Package cmd is the genecanvas command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/genecanvas/internal/config"
	"github.com/yumyai/genecanvas/logger"
)

const Version = "0.1.0"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v       *viper.Viper
	cfg     config.Config
	envFile string
}

// NewRootCmd builds the command tree. Each call gets its own viper instance,
// so commands can be built and run side by side in tests.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "genecanvas",
		Short:         "Compose genetic circuits and check them for operons",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", "", "read environment from this file instead of .env")
	pf.String(config.KeyData, "", "data directory (GENECANVAS_DATA, default ./data)")
	pf.String(config.KeyCatalog, "", "template catalog file (GENECANVAS_CATALOG, default <data>/db/catalog.db)")
	pf.String(config.KeyLogLevel, "", "log level: debug, info, warn, error (GENECANVAS_LOG_LEVEL)")
	pf.Bool(config.KeyStrict, false, "panic on structural integrity violations (GENECANVAS_STRICT)")
	for _, key := range []string{config.KeyData, config.KeyCatalog, config.KeyLogLevel, config.KeyStrict} {
		_ = a.v.BindPFlag(key, pf.Lookup(key))
	}

	root.AddCommand(
		newServeCmd(a),
		newAnalyzeCmd(a),
		newCatalogCmd(a),
	)
	return root
}

// init sets up logging and resolves the configuration. Logging starts at info
// so that config problems are reported, then moves to the configured level.
func (a *app) init() error {
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		return err
	}
	a.cfg = config.Load(a.v, a.envFile)

	level, err := logger.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := logger.InitLogger(level); err != nil {
		return err
	}
	logger.Debug("Configuration loaded",
		zap.String("data", a.cfg.DataDir),
		zap.String("catalog", a.cfg.CatalogPath),
		zap.Bool("strict", a.cfg.Strict),
	)
	return nil
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := NewRootCmd().Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
