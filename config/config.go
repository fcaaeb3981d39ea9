package config

import (
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/qfmath/quadrature"
)

// Config holds the numeric integration settings shared by every
// NumericIntegration built without an explicit configuration.
type Config struct {
	// Formula is the quadrature rule used by numeric integration.
	Formula quadrature.Formula `yaml:"formula"`

	// Intervals is the number of subintervals the rule splits [t1, t2] into.
	Intervals int `yaml:"intervals" validate:"required,min=1"`
}

// DefaultConfig integrates with Simpson's rule over 1000 subintervals.
var DefaultConfig = Config{
	Formula:   quadrature.Simpsons,
	Intervals: 1000,
}

var (
	mu  sync.RWMutex
	cfg = DefaultConfig

	validate = validator.New()
)

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Validate checks that c names a known formula and a positive interval count.
func (c Config) Validate() error {
	if _, err := c.Formula.MarshalText(); err != nil {
		return errors.Wrap(err, "config: formula")
	}
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "config")
	}
	return nil
}

// Parse decodes YAML on top of DefaultConfig and validates the result.
// Keys that are absent keep their default.
func Parse(data []byte) (Config, error) {
	c := DefaultConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "config: decode yaml")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	return Parse(data)
}
