package models

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Arch    string `yaml:"arch"`
	Base    uint64 `yaml:"base"`
	Count   uint   `yaml:"count"`
	Block   bool   `yaml:"block"`
	Thumb   bool   `yaml:"thumb"`
	Color   bool   `yaml:"color"`
	Verbose bool   `yaml:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		Arch:  "x86_64",
		Base:  0x1000,
		Count: 16,
	}
}

// LoadConfig parses yaml over the defaults, so missing keys keep their default.
func LoadConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if _, err := ParseArch(c.Arch); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return c, nil
}
