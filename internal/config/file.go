package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tailscale/hujson"
)

// fileConfig is the on-disk shape of ffxrename.jsonc. Comments and trailing
// commas are allowed. Pointer fields distinguish "absent" from zero values.
type fileConfig struct {
	Tool    *string `json:"tool"`
	Search  *string `json:"search"`
	Color   *string `json:"color"`
	Log     *string `json:"log"`
	Verbose *bool   `json:"verbose"`
}

// loadFile reads a JSONC config file into a set of overrides. A missing file
// is not an error when required is false (the implicit default file).
func loadFile(path string, required bool) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	var fc fileConfig
	if err := json.Unmarshal(std, &fc); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &fc, nil
}

// apply copies file values into cfg, skipping any field whose flag the user
// set explicitly. changed reports whether the named flag was given.
func (fc *fileConfig) apply(cfg *Config, changed func(name string) bool) error {
	if fc.Tool != nil && !changed("tool") {
		cfg.ToolPath = *fc.Tool
	}
	if fc.Search != nil && !changed("search") {
		cfg.Search = *fc.Search
	}
	if fc.Color != nil && !changed("color") && !changed("no-color") {
		v := colorModeValue{p: &cfg.ColorMode}
		if err := v.Set(*fc.Color); err != nil {
			return err
		}
	}
	if fc.Log != nil && !changed("log") {
		cfg.LogFile = *fc.Log
	}
	if fc.Verbose != nil && !changed("verbose") {
		cfg.Verbose = *fc.Verbose
	}
	return nil
}
