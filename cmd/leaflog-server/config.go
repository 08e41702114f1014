package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config specifies the file format of config files.
type Config struct {
	ServerAddr  string `yaml:"addr"`
	MetricsAddr string `yaml:"metrics-addr"` // Empty disables the metrics server.

	DatabaseFile string `yaml:"database"`
	TreeName     string `yaml:"tree"`

	LogLevel string `yaml:"log-level"`
}

func ReadConfig(filename string) (*Config, error) {
	// Read from file and parse.
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var parsed Config
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}

	// Check that all required fields are populated.
	if parsed.ServerAddr == "" {
		return nil, fmt.Errorf("field not provided: addr")
	} else if parsed.DatabaseFile == "" {
		return nil, fmt.Errorf("field not provided: database")
	}
	if parsed.TreeName == "" {
		parsed.TreeName = "default"
	}
	if parsed.LogLevel == "" {
		parsed.LogLevel = "info"
	}

	return &parsed, nil
}
