// Package config loads mode configuration for the policy gate.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yanmxa/modegate/internal/mode"
)

// Settings holds the mode configuration supplied to the policy gate.
type Settings struct {
	// CustomModes are user-defined modes. A custom mode with a built-in
	// slug overrides the built-in definition.
	CustomModes []mode.Config `yaml:"customModes"`

	// ToolRequirements maps tool names to capability flags. A tool mapped
	// to false is denied in every mode.
	ToolRequirements map[string]bool `yaml:"toolRequirements"`
}

// NewSettings returns empty settings.
func NewSettings() *Settings {
	return &Settings{}
}

// Validate checks every custom mode definition.
func (s *Settings) Validate() error {
	for i := range s.CustomModes {
		if err := s.CustomModes[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Merge overlays override onto base. A custom mode in override replaces a
// base mode with the same slug; requirements merge key-wise. Neither input
// is mutated.
func Merge(base, override *Settings) *Settings {
	merged := &Settings{}

	bySlug := make(map[string]int)
	for _, c := range base.CustomModes {
		bySlug[c.Slug] = len(merged.CustomModes)
		merged.CustomModes = append(merged.CustomModes, c)
	}
	for _, c := range override.CustomModes {
		if i, ok := bySlug[c.Slug]; ok {
			merged.CustomModes[i] = c
			continue
		}
		bySlug[c.Slug] = len(merged.CustomModes)
		merged.CustomModes = append(merged.CustomModes, c)
	}

	if len(base.ToolRequirements) > 0 || len(override.ToolRequirements) > 0 {
		merged.ToolRequirements = make(map[string]bool)
		for k, v := range base.ToolRequirements {
			merged.ToolRequirements[k] = v
		}
		for k, v := range override.ToolRequirements {
			merged.ToolRequirements[k] = v
		}
	}

	return merged
}

// Loader loads and merges settings from multiple sources.
type Loader struct {
	// userDir is the user-level config directory (e.g., ~/.modegate)
	userDir string

	// projectDir is the project-level config directory (e.g., .modegate)
	projectDir string
}

// NewLoader creates a settings loader with the default directories:
// ~/.modegate for the user level and .modegate for the project level.
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()
	return &Loader{
		userDir:    filepath.Join(homeDir, ".modegate"),
		projectDir: ".modegate",
	}
}

// NewLoaderWithDirs creates a loader with custom directories.
func NewLoaderWithDirs(userDir, projectDir string) *Loader {
	return &Loader{userDir: userDir, projectDir: projectDir}
}

// Load loads and merges settings from all sources.
// Priority (lowest to highest):
//  1. ~/.modegate/modes.yaml (user level)
//  2. .modegate/modes.yaml (project level)
//  3. .modegate/modes.local.yaml (project local level)
//
// Later sources override earlier ones. Missing or unreadable sources are
// skipped.
func (l *Loader) Load() (*Settings, error) {
	settings := NewSettings()

	sources := []string{
		filepath.Join(l.userDir, "modes.yaml"),
		filepath.Join(l.projectDir, "modes.yaml"),
		filepath.Join(l.projectDir, "modes.local.yaml"),
	}

	for _, src := range sources {
		if data, err := os.ReadFile(src); err == nil {
			var s Settings
			if err := yaml.Unmarshal(data, &s); err == nil {
				settings = Merge(settings, &s)
			}
		}
	}

	return settings, nil
}

// LoadFile loads settings from a specific file.
func (l *Loader) LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &settings, nil
}

// UserDir returns the user config directory path.
func (l *Loader) UserDir() string {
	return l.userDir
}

// ProjectDir returns the project config directory path.
func (l *Loader) ProjectDir() string {
	return l.projectDir
}

// EnsureUserDir creates the user config directory if it doesn't exist.
func (l *Loader) EnsureUserDir() error {
	return os.MkdirAll(l.userDir, 0755)
}
