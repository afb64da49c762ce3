package input

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed bindings.yaml
var defaultBindingsYAML []byte

// Bindings maps semantic inputs to key names per context. Key names are
// abstract; the driver resolves them to actual keyboard state.
type Bindings struct {
	Gameplay GameplayBindings `yaml:"gameplay"`
	Menu     MenuBindings     `yaml:"menu"`
	Pause    PauseBindings    `yaml:"pause"`
}

type GameplayBindings struct {
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
	Jump    []string `yaml:"jump"`
	Dash    []string `yaml:"dash"`
	Shoot   []string `yaml:"shoot"`
	Restart []string `yaml:"restart"`
	Pause   []string `yaml:"pause"`
}

type MenuBindings struct {
	Up     []string `yaml:"up"`
	Down   []string `yaml:"down"`
	Select []string `yaml:"select"`
	Back   []string `yaml:"back"`
	Quit   []string `yaml:"quit"`
	Left   []string `yaml:"left"`
	Right  []string `yaml:"right"`
	Switch []string `yaml:"switch"`
}

type PauseBindings struct {
	Close  []string `yaml:"close"`
	Menu   []string `yaml:"menu"`
	Up     []string `yaml:"up"`
	Down   []string `yaml:"down"`
	Select []string `yaml:"select"`
}

// DefaultBindings returns the embedded key map.
func DefaultBindings() *Bindings {
	var b Bindings
	if err := yaml.Unmarshal(defaultBindingsYAML, &b); err != nil {
		panic(fmt.Sprintf("input: embedded bindings are invalid: %v", err))
	}
	return &b
}

// LoadBindings reads a user key map from path. A missing file falls back
// to the embedded defaults; an unreadable one is an error.
func LoadBindings(path string, logger *log.Logger) (*Bindings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("no custom bindings, using defaults", "path", path)
		return DefaultBindings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bindings: %w", err)
	}
	var b Bindings
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse bindings %s: %w", path, err)
	}
	return &b, nil
}
