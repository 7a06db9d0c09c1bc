package zipffy

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxWordLength is the longest word, in bytes, the hash function
	// accepts and the tokenizer emits.
	DefaultMaxWordLength = 50

	// DefaultMaxLineLength bounds the bytes of one input line, terminator
	// excluded. a longer line stops the run with ErrorCodeLineTooLong.
	DefaultMaxLineLength = 4096

	// MaxLengthLimit caps both configurable lengths
	MaxLengthLimit = 1 << 30
)

// Mersenne primes used as table capacities, keeping the load factor low for
// any estimate below the tier
const (
	mersenne5 int64 = 8191
	mersenne6 int64 = 131071
	mersenne7 int64 = 524287
	mersenne8 int64 = 2147483647
	mersenne9 int64 = 2305843009213693951
)

// DefaultCapacityTiers returns the built-in capacity ladder in ascending
// order. a fresh slice is returned on every call.
func DefaultCapacityTiers() []int64 {
	return []int64{mersenne5, mersenne6, mersenne7, mersenne8, mersenne9}
}

// Config carries every tunable of a run. it is passed explicitly to the
// pre-scan, tokenizer, and reporter.
type Config struct {
	MaxLineLength int     `yaml:"max_line_length"`
	MaxWordLength int     `yaml:"max_word_length"`
	CapacityTiers []int64 `yaml:"capacity_tiers"`

	Verbose   bool `yaml:"verbose"`   // per-line and per-word trace
	Color     bool `yaml:"color"`     // colored report banner
	Histogram bool `yaml:"histogram"` // append a +++ bar per word to the report
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		MaxLineLength: DefaultMaxLineLength,
		MaxWordLength: DefaultMaxWordLength,
		CapacityTiers: DefaultCapacityTiers(),
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. keys missing from
// the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, wrapZipfError(ErrorCodeInvalidConfig, err, "config file %s does not exist", path)
		}
		return nil, wrapZipfError(ErrorCodeInvalidConfig, err, "cannot read config file %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes on top of DefaultConfig and validates the
// result. unknown keys are rejected so that typos do not silently fall back
// to defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, wrapZipfError(ErrorCodeInvalidConfig, err, "invalid config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the limits and the capacity ladder
func (c *Config) Validate() error {
	if c.MaxLineLength < 1 {
		return newZipfErrorf(ErrorCodeInvalidConfig, "max_line_length must be positive, got %d", c.MaxLineLength)
	}
	if c.MaxWordLength < 1 {
		return newZipfErrorf(ErrorCodeInvalidConfig, "max_word_length must be positive, got %d", c.MaxWordLength)
	}
	if c.MaxLineLength > MaxLengthLimit {
		return newZipfErrorf(ErrorCodeInvalidConfig, "max_line_length must not exceed %d, got %d", MaxLengthLimit, c.MaxLineLength)
	}
	if c.MaxWordLength > c.MaxLineLength {
		return newZipfErrorf(ErrorCodeInvalidConfig, "max_word_length %d exceeds max_line_length %d", c.MaxWordLength, c.MaxLineLength)
	}
	if len(c.CapacityTiers) == 0 {
		return NewZipfError(ErrorCodeInvalidConfig, "capacity_tiers must list at least one capacity")
	}
	for i, tier := range c.CapacityTiers {
		if tier < 1 {
			return newZipfErrorf(ErrorCodeInvalidConfig, "capacity_tiers[%d] must be positive, got %d", i, tier)
		}
		if i > 0 && tier <= c.CapacityTiers[i-1] {
			return newZipfErrorf(ErrorCodeInvalidConfig, "capacity_tiers must be strictly ascending, %d follows %d", tier, c.CapacityTiers[i-1])
		}
	}
	return nil
}

// orDefault lets library entry points accept a nil config
func (c *Config) orDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	return c
}
