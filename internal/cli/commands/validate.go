package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Maharajan0604/CenQuery/internal/cli/output"
	"github.com/Maharajan0604/CenQuery/internal/queries"
	"github.com/Maharajan0604/CenQuery/internal/report"
	"github.com/Maharajan0604/CenQuery/internal/runner"
	"github.com/Maharajan0604/CenQuery/internal/validate"
)

// watchDebounce coalesces editor save bursts into one re-validation.
const watchDebounce = 250 * time.Millisecond

var errValidationFailed = errors.New("validation failed")

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	QueriesPath string   // batch file, positional arg or config
	Inline      []string // queries given directly on the command line
	Explain     bool     // print repaired queries for suggestions
	Watch       bool     // re-validate on file changes
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [queries-file]",
		Short: "Validate queries against the declared schema",
		Long: `Statically check every table and column reference in a batch of
SQL queries against the declared schema, without executing anything.

Each query gets its own pass/fail result with typed diagnostics:
parse errors, unknown tables, unknown columns, invalid joins and type
mismatches, plus spelling suggestions where a close schema name
exists. The exit status is non-zero when any query fails.`,
		Example: `  # Validate a batch file against a YAML schema
  cenquery validate queries.sql --schema schema.yaml

  # Introspect an SQLite database instead of a schema file
  cenquery validate queries.sql --schema db:census.sqlite

  # One-off query from the command line
  cenquery validate -q "SELECT crop FROM crop_stats"

  # Machine-readable report
  cenquery validate queries.sql -o json

  # Re-validate whenever the schema or batch file changes
  cenquery validate queries.sql --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.QueriesPath = args[0]
			}
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Inline, "query", "q", nil, "Validate this query instead of a batch file (repeatable)")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "Show the repaired query for every suggestion")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-validate when the schema or batch file changes")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *ValidateOptions) error {
	cmdCtx := NewCommandContext(cmd)

	if opts.QueriesPath == "" {
		opts.QueriesPath = cmdCtx.Cfg.Queries
	}
	if opts.QueriesPath == "" && len(opts.Inline) == 0 {
		return fmt.Errorf("nothing to validate, pass a queries file or --query")
	}

	err := validateOnce(cmd.Context(), cmdCtx, opts)
	if !opts.Watch {
		return err
	}
	if err != nil && !errors.Is(err, errValidationFailed) {
		return err
	}

	// The exit status contract covers the initial pass only, watch
	// iterations just re-render.
	if watchErr := watchAndRevalidate(cmd.Context(), cmdCtx, opts); watchErr != nil {
		return watchErr
	}
	return err
}

func validateOnce(ctx context.Context, cmdCtx *CommandContext, opts *ValidateOptions) error {
	cat, err := loadCatalog(ctx, cmdCtx.Cfg)
	if err != nil {
		return err
	}

	batch := opts.Inline
	if len(batch) == 0 {
		batch, err = queries.LoadFile(opts.QueriesPath)
		if err != nil {
			return err
		}
	}

	r := runner.New(validate.New(cat), cmdCtx.Cfg.Workers, cmdCtx.Logger)
	rep, err := r.Run(ctx, batch)
	if err != nil {
		return err
	}

	renderReport(cmdCtx.Renderer, rep, opts.Explain)

	if !rep.AllPass() {
		_, failed := rep.Counts()
		return fmt.Errorf("%w: %d of %d queries have diagnostics", errValidationFailed, failed, len(rep.Results))
	}
	return nil
}

func watchAndRevalidate(ctx context.Context, cmdCtx *CommandContext, opts *ValidateOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if path := schemaPath(cmdCtx.Cfg); path != "" {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching schema: %w", err)
		}
	}
	if opts.QueriesPath != "" {
		if err := watcher.Add(opts.QueriesPath); err != nil {
			return fmt.Errorf("watching queries: %w", err)
		}
	}

	cmdCtx.Logger.Info("watching for changes")

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
			// Editors that replace the file drop the watch, re-add.
			_ = watcher.Add(event.Name)

		case <-rerun:
			cmdCtx.Renderer.Println()
			if err := validateOnce(ctx, cmdCtx, opts); err != nil && !errors.Is(err, errValidationFailed) {
				cmdCtx.Renderer.Errorf("Error: %v\n", err)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watch error", "error", werr)
		}
	}
}

func renderReport(r *output.Renderer, rep *report.Report, explain bool) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(rep)
		return
	}

	styles := r.Styles()
	for _, res := range rep.Results {
		if res.Pass {
			continue
		}
		r.Printf("query %d: %s\n", res.Index, res.Query)
		for _, d := range res.Diagnostics {
			label := fmt.Sprintf("[%s]", d.Kind)
			where := ""
			if d.Clause != "" {
				where = d.Clause + ": "
			}
			r.Printf("  %s %s%s (line %d, column %d)\n",
				styles.Error.Render(label), where, d.Message, d.Line, d.Column)
			if len(d.Suggestions) > 0 {
				r.Printf("      did you mean: %s\n", styles.Warning.Render(joinSuggestions(d.Suggestions)))
			}
			if explain {
				if fixed, ok := validate.Rewrite(res.Query, d); ok {
					r.Printf("      rewrite: %s\n", styles.Muted.Render(fixed))
				}
			}
		}
	}

	passed, failed := rep.Counts()
	if failed == 0 {
		r.Success(fmt.Sprintf("All %d queries passed", passed))
		return
	}
	r.Failure(fmt.Sprintf("%d passed, %d failed, %d diagnostics", passed, failed, rep.DiagnosticCount()))
}

func joinSuggestions(suggestions []string) string {
	out := ""
	for i, s := range suggestions {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
