package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"rvcss/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	OptionsConfig struct {
		SizeUnit common.SizeUnit `yaml:"css_size_unit" validate:"gte=0,lte=1"`
		TimeUnit common.TimeUnit `yaml:"css_time_unit" validate:"gte=0,lte=1"`
		HashMode common.HashMode `yaml:"hash_mode" validate:"gte=0,lte=1"`
	}

	// Styles is everything the engine consumes from configuration. It is
	// treated as read-only once loaded.
	Styles struct {
		Options     OptionsConfig `yaml:"options"`
		Breakpoints Breakpoints   `yaml:"breakpoints" validate:"dive"`
		Shorthands  Shorthands    `yaml:"shorthands" validate:"dive,keys,required,endkeys,min=1"`
	}

	// StylesheetConfig controls generated stylesheet files. Banner is a
	// text/template (with slim-sprig functions) put on top of the
	// stylesheet as a comment.
	StylesheetConfig struct {
		Banner string `yaml:"banner"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Styles     Styles           `yaml:"styles"`
		Stylesheet StylesheetConfig `yaml:"stylesheet"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

// DefaultStyles returns styles configuration with default options, no
// breakpoints and no shorthands.
func DefaultStyles() Styles {
	return Styles{
		Options: OptionsConfig{
			SizeUnit: common.SizeUnitRem,
			TimeUnit: common.TimeUnitMs,
			HashMode: common.HashModeProduction,
		},
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
