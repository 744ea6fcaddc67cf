// Package config gathers the file locations and switches of one run from a
// YAML file, the environment and command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingConfiguration is returned by Validate when a required location
// was not given by any source.
var ErrMissingConfiguration = errors.New("config: missing configuration")

// Environment variables read by FromEnv.
const (
	EnvTypedefs = "TYPEDEFS_JSON_FILE"
	EnvStructs  = "STRUCT_JSON_FILE"
	EnvCommands = "COMMANDS_JSON_FILE"
	EnvPreamble = "TEMPLATE_FILE"
	EnvOutput   = "OUTPUT_PATH"
)

type Config struct {
	TypedefsFile string `yaml:"typedefs"`
	StructsFile  string `yaml:"structs"`
	CommandsFile string `yaml:"commands"`
	PreambleFile string `yaml:"preamble"`
	OutputPath   string `yaml:"output"`

	// Strict turns unconvertible default values into a failed run.
	Strict bool `yaml:"strict"`

	Log Log `yaml:"log"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file. Unknown keys are rejected so that a
// misspelt location does not silently fall back to another source.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// FromEnv builds a Config from environment variables. lookup is usually
// os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) Config {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	return Config{
		TypedefsFile: get(EnvTypedefs),
		StructsFile:  get(EnvStructs),
		CommandsFile: get(EnvCommands),
		PreambleFile: get(EnvPreamble),
		OutputPath:   get(EnvOutput),
	}
}

// Merge returns c with every value set in over taking precedence.
func (c Config) Merge(over Config) Config {
	pick := func(base, o string) string {
		if o != "" {
			return o
		}
		return base
	}

	return Config{
		TypedefsFile: pick(c.TypedefsFile, over.TypedefsFile),
		StructsFile:  pick(c.StructsFile, over.StructsFile),
		CommandsFile: pick(c.CommandsFile, over.CommandsFile),
		PreambleFile: pick(c.PreambleFile, over.PreambleFile),
		OutputPath:   pick(c.OutputPath, over.OutputPath),
		Strict:       c.Strict || over.Strict,
		Log: Log{
			Level:  pick(c.Log.Level, over.Log.Level),
			Format: pick(c.Log.Format, over.Log.Format),
		},
	}
}

// Validate reports every required location that is still empty.
func (c Config) Validate() error {
	var missing []string
	for _, f := range []struct {
		value string
		key   string
	}{
		{c.TypedefsFile, EnvTypedefs},
		{c.StructsFile, EnvStructs},
		{c.CommandsFile, EnvCommands},
		{c.PreambleFile, EnvPreamble},
		{c.OutputPath, EnvOutput},
	} {
		if f.value == "" {
			missing = append(missing, f.key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfiguration, strings.Join(missing, ", "))
	}
	return nil
}
