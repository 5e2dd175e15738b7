package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Schema file layout:
//
//	tables:
//	  - name: crop_stats
//	    columns:
//	      - name: crop
//	        type: text
//	      - name: area_sown_2025_26
//	        type: real
//
// Column type may be omitted, the column is then treated as unknown
// and compares compatibly with everything.

type schemaFile struct {
	Tables []schemaTable `yaml:"tables"`
}

type schemaTable struct {
	Name    string         `yaml:"name"`
	Columns []schemaColumn `yaml:"columns"`
}

type schemaColumn struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable"`
}

// LoadFile reads a YAML schema file into a catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return Load(data)
}

// Load parses YAML schema bytes into a catalog. The load is
// all-or-nothing: any schema error aborts it.
func Load(data []byte) (*Catalog, error) {
	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &SchemaError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if len(file.Tables) == 0 {
		return nil, &SchemaError{Message: "schema declares no tables"}
	}

	c := New()
	for _, t := range file.Tables {
		if strings.TrimSpace(t.Name) == "" {
			return nil, &SchemaError{Message: "table with empty name"}
		}
		cols := make([]Column, 0, len(t.Columns))
		for _, sc := range t.Columns {
			if strings.TrimSpace(sc.Name) == "" {
				return nil, &SchemaError{Table: t.Name, Message: "column with empty name"}
			}
			typ, err := ParseType(sc.Type)
			if err != nil {
				return nil, &SchemaError{Table: t.Name, Column: sc.Name, Message: err.Error()}
			}
			cols = append(cols, Column{Name: sc.Name, Type: typ, Nullable: sc.Nullable})
		}
		if err := c.AddTable(t.Name, cols); err != nil {
			return nil, err
		}
	}
	return c, nil
}
