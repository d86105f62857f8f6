// Package cli implements the logic behind the sway command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so scene files can use "250ms" style values
// in both YAML and JSON.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// SpringSettings configures the demo's spring physics.
type SpringSettings struct {
	Tension   float64 `yaml:"tension" json:"tension"`
	Friction  float64 `yaml:"friction" json:"friction"`
	Mass      float64 `yaml:"mass" json:"mass"`
	Precision float64 `yaml:"precision" json:"precision"`
}

// Step is one stage of a demo scene: a set of items held for a while.
type Step struct {
	Items []string `yaml:"items" json:"items"`
	Dwell Duration `yaml:"dwell" json:"dwell"`
}

// Scene describes a scripted demo run.
type Scene struct {
	Name   string          `yaml:"name" json:"name"`
	Tick   Duration        `yaml:"tick" json:"tick"`
	Trail  Duration        `yaml:"trail" json:"trail"`
	Spring *SpringSettings `yaml:"spring" json:"spring"`
	Steps  []Step          `yaml:"steps" json:"steps"`
}

// DefaultScene is used when no scene file is given.
func DefaultScene() *Scene {
	return &Scene{
		Name:  "inbox",
		Tick:  Duration(80 * time.Millisecond),
		Trail: Duration(60 * time.Millisecond),
		Steps: []Step{
			{Items: []string{"welcome", "updates", "digest"}, Dwell: Duration(2 * time.Second)},
			{Items: []string{"welcome", "digest", "alerts", "billing"}, Dwell: Duration(2 * time.Second)},
			{Items: []string{"alerts"}, Dwell: Duration(2 * time.Second)},
			{Items: nil, Dwell: Duration(time.Second)},
		},
	}
}

// LoadScene reads a scene file (YAML or JSON). An empty path falls back to
// the default scene.
func LoadScene(path string) (*Scene, error) {
	if path == "" {
		return DefaultScene(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var scene Scene
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &scene); err != nil {
			return nil, fmt.Errorf("failed to parse scene json: %w", err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &scene); err != nil {
			return nil, fmt.Errorf("failed to parse scene yaml: %w", err)
		}
	}

	if scene.Tick <= 0 {
		scene.Tick = Duration(80 * time.Millisecond)
	}
	if len(scene.Steps) == 0 {
		return nil, fmt.Errorf("scene %q has no steps", scene.Name)
	}

	return &scene, nil
}
