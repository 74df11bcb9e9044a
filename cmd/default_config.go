package cmd

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	sim "github.com/schedsim/schedsim/sim"
)

//go:embed presets.yaml
var presetsYAML []byte

// PresetsFile represents the full presets.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
// Each preset stays a raw node until it is applied over DefaultConfig.
type PresetsFile struct {
	Version string               `yaml:"version"`
	Presets map[string]yaml.Node `yaml:"presets"`
}

// loadPresets parses the embedded presets with strict field checking. Every preset
// is layered over the default scenario, so omitted sections keep DefaultConfig values.
func loadPresets() (map[string]*sim.Scenario, error) {
	var file PresetsFile
	decoder := yaml.NewDecoder(bytes.NewReader(presetsYAML))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	presets := make(map[string]*sim.Scenario, len(file.Presets))
	for name, node := range file.Presets {
		raw, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		sc, err := sim.ParseScenario(raw)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		presets[name] = sc
	}
	return presets, nil
}

// presetNames returns the embedded preset names in sorted order.
func presetNames() []string {
	presets, err := loadPresets()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyPreset returns a fresh copy of the named preset scenario.
func applyPreset(name string) (*sim.Scenario, error) {
	presets, err := loadPresets()
	if err != nil {
		return nil, err
	}
	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (valid: %v)", name, presetNames())
	}
	return preset, nil
}
