// Package config loads CenQuery's layered configuration: defaults,
// then cenquery.yaml, then CENQUERY_ environment variables, then
// command-line flags.
package config

// Defaults.
const (
	DefaultOutput  = "auto"
	DefaultWorkers = 4
)

// Config is the resolved CLI configuration.
type Config struct {
	// Schema locates the declared schema: a YAML file path, or
	// db:<path> for an SQLite database to introspect.
	Schema string `koanf:"schema"`

	// Queries is the default batch file validated when the command
	// gets no positional argument.
	Queries string `koanf:"queries"`

	// Output selects the render mode: auto, text or json.
	Output string `koanf:"output"`

	// Workers bounds concurrent query validations.
	Workers int `koanf:"workers"`

	Verbose bool `koanf:"verbose"`

	// ProjectRoot is the directory the config file was found in, the
	// base for resolving relative schema and query paths.
	ProjectRoot string `koanf:"-"`
}
