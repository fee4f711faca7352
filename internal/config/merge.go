package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// sectionAppliers decode one top-level key of a config file onto a Config.
// The table, logging, and output sections start from their defaults, so a
// file that sets only table.page_size keeps the default max_visible_pages.
// Keys with no applier are ignored.
//
//nolint:gochecknoglobals // Fixed lookup table.
var sectionAppliers = map[string]func(target *Config, data []byte) error{
	"version": func(target *Config, data []byte) error {
		v, err := decodeSection(data, "")
		if err != nil {
			return err
		}
		target.Version = v
		return nil
	},
	"table": func(target *Config, data []byte) error {
		v, err := decodeSection(data, New().Table)
		if err != nil {
			return err
		}
		target.Table = v
		return nil
	},
	"logging": func(target *Config, data []byte) error {
		v, err := decodeSection(data, New().Logging)
		if err != nil {
			return err
		}
		target.Logging = v
		return nil
	},
	"output": func(target *Config, data []byte) error {
		v, err := decodeSection(data, New().Output)
		if err != nil {
			return err
		}
		target.Output = v
		return nil
	},
}

// decodeSection unmarshals data over a copy of defaults.
func decodeSection[S any](data []byte, defaults S) (S, error) {
	v := defaults
	if err := yaml.Unmarshal(data, &v); err != nil {
		return defaults, err
	}
	return v, nil
}

// ShallowMergeYAML applies a tablestate config file to target. Each section
// present in the file replaces the matching section of target. Sections the
// file omits keep the values target already holds, so defaults survive an
// empty or partial file.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", overlayPath, err)
	}

	var sections map[string]yaml.Node
	if err = yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", overlayPath, err)
	}

	for key, node := range sections {
		apply, ok := sectionAppliers[key]
		if !ok {
			continue
		}
		sectionBytes, marshalErr := yaml.Marshal(&node)
		if marshalErr != nil {
			return fmt.Errorf("re-encoding section %q: %w", key, marshalErr)
		}
		if err = apply(target, sectionBytes); err != nil {
			return fmt.Errorf("applying section %q: %w", key, err)
		}
	}

	return nil
}
