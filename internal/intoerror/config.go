package intoerrorinternal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tikhop/IntoError/internal/intoerror/parse"
)

// ConfigFile is the optional per-project configuration file. Command-line
// flags take precedence over it.
const ConfigFile = "intoerror.yaml"

// Options configure a generation run.
type Options struct {
	// OutFile is the name of the generated file in each package.
	OutFile string `yaml:"out"`

	// Tags are extra build tags applied on top of "intoerror" when loading
	// packages, comma-separated.
	Tags string `yaml:"tags"`

	// Fallback is the name of the wildcard variant synthesized into unions
	// that declare none.
	Fallback string `yaml:"fallback"`
}

// DefaultOptions returns the options used when neither flags nor a config
// file override them.
func DefaultOptions() Options {
	return Options{
		OutFile:  "intoerror_gen.go",
		Fallback: parse.DefaultFallbackName,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.OutFile == "" {
		o.OutFile = def.OutFile
	}
	if o.Fallback == "" {
		o.Fallback = def.Fallback
	}
	return o
}

// LoadOptions reads intoerror.yaml from dir. A missing file is not an error;
// it yields the defaults.
func LoadOptions(dir string) (Options, error) {
	opts := DefaultOptions()

	raw, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, err
	}

	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return opts, fmt.Errorf("parse %s: %w", ConfigFile, err)
	}
	return opts.withDefaults(), nil
}
