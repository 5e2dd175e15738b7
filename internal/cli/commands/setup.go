// Package commands implements the cenquery subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Maharajan0604/CenQuery/internal/catalog"
	"github.com/Maharajan0604/CenQuery/internal/cli/config"
	"github.com/Maharajan0604/CenQuery/internal/cli/output"
)

// CommandContext holds the dependencies every command needs.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the command context from the values the
// root command stored during PersistentPreRunE.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}
}

// loadCatalog builds the catalog from the configured schema source: a
// YAML schema file, or an SQLite database given as db:<path>.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Schema == "" {
		return nil, fmt.Errorf("no schema configured, pass --schema or set it in cenquery.yaml")
	}
	if path, ok := strings.CutPrefix(cfg.Schema, "db:"); ok {
		return catalog.LoadSQLite(ctx, path)
	}
	return catalog.LoadFile(cfg.Schema)
}

// schemaPath is the filesystem path behind the schema source, used for
// watch mode.
func schemaPath(cfg *config.Config) string {
	return strings.TrimPrefix(cfg.Schema, "db:")
}
