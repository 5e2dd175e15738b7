// Package queries loads validation batches from disk. A batch is
// either a .sql file with semicolon-separated statements or a YAML
// file with a queries list.
package queries

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type queriesFile struct {
	Queries []string `yaml:"queries"`
}

// LoadFile reads a batch of queries from path, dispatching on the
// file extension. Empty statements are dropped.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading queries file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(data)
	default:
		return Split(string(data)), nil
	}
}

func loadYAML(data []byte) ([]string, error) {
	var file queriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing queries file: %w", err)
	}
	var out []string
	for _, q := range file.Queries {
		if s := strings.TrimSpace(q); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Split cuts SQL text into statements at top-level semicolons,
// skipping separators inside string literals, quoted identifiers and
// comments. Statements keep their original text, trimmed.
func Split(text string) []string {
	var (
		out   []string
		start int
	)

	flush := func(end int) {
		if s := strings.TrimSpace(text[start:end]); s != "" {
			out = append(out, s)
		}
	}

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ';':
			flush(i)
			start = i + 1
		case '\'', '"':
			quote := text[i]
			for i++; i < len(text); i++ {
				if text[i] == quote {
					// A doubled quote is an escape, not a close.
					if i+1 < len(text) && text[i+1] == quote {
						i++
						continue
					}
					break
				}
			}
		case '-':
			if i+1 < len(text) && text[i+1] == '-' {
				for i < len(text) && text[i] != '\n' {
					i++
				}
			}
		case '/':
			if i+1 < len(text) && text[i+1] == '*' {
				i += 2
				for i+1 < len(text) && !(text[i] == '*' && text[i+1] == '/') {
					i++
				}
				i++
			}
		}
	}
	flush(len(text))
	return out
}
