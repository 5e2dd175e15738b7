package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey and configKey store the logger and resolved config in the
// command context.
type (
	loggerKey struct{}
	configKey struct{}
)

// maxUpwardSearchLevels limits how far up the directory tree the
// config file search goes.
const maxUpwardSearchLevels = 10

var configFileUsed string

var configFileNames = []string{"cenquery.yaml", "cenquery.yml"}

func configFileIn(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigFile returns the explicit path when given, otherwise
// searches upward from the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configFileIn(dir); found != "" {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load builds the configuration. Precedence, highest first: flags set
// on the command line, CENQUERY_ environment variables, the config
// file, built-in defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"output":  DefaultOutput,
		"workers": DefaultWorkers,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// CENQUERY_SCHEMA -> schema
	if err := k.Load(env.Provider("CENQUERY_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CENQUERY_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only flags the user actually set may override.
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Paths in the config file are relative to the file, paths from
	// flags and env are relative to the working directory.
	cfg.ProjectRoot = projectRoot(configFileUsed)
	if !fromFlagOrEnv(flags, "schema", "CENQUERY_SCHEMA") {
		cfg.Schema = resolveRelativeTo(cfg.Schema, cfg.ProjectRoot)
	}
	if !fromFlagOrEnv(flags, "queries", "CENQUERY_QUERIES") {
		cfg.Queries = resolveRelativeTo(cfg.Queries, cfg.ProjectRoot)
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	switch cfg.Output {
	case "auto", "text", "json":
	default:
		return nil, fmt.Errorf("invalid output format %q (want auto, text or json)", cfg.Output)
	}

	return &cfg, nil
}

func projectRoot(cfgFile string) string {
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func fromFlagOrEnv(flags *pflag.FlagSet, flagName, envName string) bool {
	if flags != nil && flags.Changed(flagName) {
		return true
	}
	_, ok := os.LookupEnv(envName)
	return ok
}

func resolveRelativeTo(path, baseDir string) string {
	if path == "" || strings.HasPrefix(path, "db:") || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// GetConfigFileUsed returns the config file path the last Load used,
// if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// WithConfig stores the resolved config in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the command context, falling
// back to defaults when none was stored.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{Output: DefaultOutput, Workers: DefaultWorkers}
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
