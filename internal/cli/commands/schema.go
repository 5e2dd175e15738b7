package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Maharajan0604/CenQuery/internal/cli/output"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the declared schema",
		Long: `Load the configured schema and print every table with its columns
and declared types. Useful for checking what the validator will
resolve references against.`,
		Example: `  # Show a YAML schema
  cenquery schema --schema schema.yaml

  # Show the schema of an SQLite database
  cenquery schema --schema db:census.sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)

			cat, err := loadCatalog(cmd.Context(), cmdCtx.Cfg)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				type jsonColumn struct {
					Name     string `json:"name"`
					Type     string `json:"type"`
					Nullable bool   `json:"nullable"`
				}
				type jsonTable struct {
					Name    string       `json:"name"`
					Columns []jsonColumn `json:"columns"`
				}
				out := make([]jsonTable, 0, len(cat.Tables()))
				for _, tbl := range cat.Tables() {
					jt := jsonTable{Name: tbl.Name}
					for _, col := range tbl.Columns {
						jt.Columns = append(jt.Columns, jsonColumn{
							Name:     col.Name,
							Type:     string(col.Type),
							Nullable: col.Nullable,
						})
					}
					out = append(out, jt)
				}
				return r.JSON(out)
			}

			styles := r.Styles()
			for _, tbl := range cat.Tables() {
				r.Println(styles.Bold.Render(tbl.Name))
				t := table.NewWriter()
				t.SetOutputMirror(r.Out())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Column", "Type", "Nullable"})
				for _, col := range tbl.Columns {
					t.AppendRow(table.Row{col.Name, col.Type, col.Nullable})
				}
				t.Render()
				r.Println()
			}
			return nil
		},
	}
}
