package buildsys

import (
	"io/ioutil"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the config file cpybuild expects in the working directory.
const ConfigFileName = "cpybuild.yaml"

// EnvOutputOverride overrides the configured output directory when set.
const EnvOutputOverride = "CPYBUILD_LOC"

// DefaultOutputDir is used whenever neither the config nor the environment
// specify an output location.
const DefaultOutputDir = "build/"

// Config holds the parsed contents of cpybuild.yaml. It's read once per
// invocation and never modified afterwards.
type Config struct {
	// Sources lists glob patterns (** is supported) resolved in order.
	Sources []string `yaml:"sources"`
	// Output is the directory the built modules are written to.
	Output string `yaml:"output"`
}

// LoadConfig reads and parses the config file at the given path.
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			return nil, eris.Wrapf(err, "Config file %s not found.", path)
		}
		return nil, eris.Wrapf(err, "Could not open file %s.", path)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to parse %s.", path)
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutputDir
	}

	return &cfg, nil
}

// OutputDir resolves the effective output location. The environment override
// wins over the configured value.
func (c *Config) OutputDir() string {
	if loc := os.Getenv(EnvOutputOverride); loc != "" {
		return loc
	}

	return c.Output
}
