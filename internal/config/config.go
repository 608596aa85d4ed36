// Package config resolves application settings from a .env file, the
// environment and command line flags (bound through viper in cmd).
package config

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yumyai/genecanvas/logger"
)

const envPrefix = "GENECANVAS"

// Viper keys. Each maps to GENECANVAS_<KEY> in the environment.
const (
	KeyData     = "data"
	KeyCatalog  = "catalog"
	KeyAddr     = "addr"
	KeyLogLevel = "log-level"
	KeyStrict   = "strict"
)

type Config struct {
	// DataDir holds the catalog database unless Catalog points elsewhere.
	DataDir string
	// CatalogPath is the SQLite file with part templates.
	CatalogPath string
	Addr        string
	LogLevel    string
	// Strict turns integrity violations in the editor into panics.
	Strict bool
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and resolves the settings from v. A missing .env is not
// an error.
func Load(v *viper.Viper, envFiles ...string) Config {
	files := make([]string, 0, len(envFiles))
	for _, f := range envFiles {
		if f != "" {
			files = append(files, f)
		}
	}
	if err := godotenv.Load(files...); err != nil {
		logger.Warn("No .env found, using local environment", zap.Error(err))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyData, "./data")
	v.SetDefault(KeyAddr, "0.0.0.0:8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyStrict, false)

	cfg := Config{
		DataDir:     v.GetString(KeyData),
		CatalogPath: v.GetString(KeyCatalog),
		Addr:        v.GetString(KeyAddr),
		LogLevel:    v.GetString(KeyLogLevel),
		Strict:      v.GetBool(KeyStrict),
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = filepath.Join(cfg.DataDir, "db", "catalog.db")
	}
	return cfg
}
