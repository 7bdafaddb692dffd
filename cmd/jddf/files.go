package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jddf"
)

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func readSchema(name string, opts jddf.DecodeOptions) (jddf.Schema, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return jddf.Schema{}, err
	}
	if isYAML(name) {
		return jddf.ParseSchemaYAML(data, opts)
	}
	return jddf.ParseSchemaJSON(data, opts)
}

func readValue(name string, opts jddf.DecodeOptions) (jddf.Value, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return jddf.Value{}, err
	}
	if isYAML(name) {
		return jddf.ParseValueYAML(data, opts)
	}
	return jddf.ParseValueJSON(data, opts)
}

// loadConfig reads a validator config file. Absent fields keep their defaults.
func loadConfig(name string) (jddf.Config, error) {
	cfg := jddf.DefaultConfig()
	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, err
	}
	if isYAML(name) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}
