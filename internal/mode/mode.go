// Package mode defines operating mode configurations: named behavioral
// profiles that restrict which tools the host may invoke.
package mode

import (
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/yanmxa/modegate/internal/tool"
)

// slugPattern constrains mode identifiers to lowercase slugs.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// GroupOptions restricts how a granted tool group may be used.
// At most one of FileRegex and FilePattern may be set.
type GroupOptions struct {
	// FileRegex limits file-path parameters to paths matching this
	// regular expression.
	FileRegex string `yaml:"fileRegex,omitempty" json:"fileRegex,omitempty"`

	// FilePattern limits file-path parameters to paths matching this
	// doublestar glob pattern.
	FilePattern string `yaml:"filePattern,omitempty" json:"filePattern,omitempty"`

	// Description is a human-readable summary of the restriction.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// GroupEntry grants one tool group, optionally restricted.
//
// In YAML a group entry is either a bare group name:
//
//	groups:
//	  - read
//
// or a mapping carrying options:
//
//	groups:
//	  - group: edit
//	    fileRegex: '\.md$'
//	    description: Markdown files only
type GroupEntry struct {
	Group   string
	Options *GroupOptions
}

// groupEntryYAML is the mapping form of a group entry.
type groupEntryYAML struct {
	Group       string `yaml:"group"`
	FileRegex   string `yaml:"fileRegex,omitempty"`
	FilePattern string `yaml:"filePattern,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (e *GroupEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&e.Group)
	}

	var m groupEntryYAML
	if err := value.Decode(&m); err != nil {
		return err
	}
	e.Group = m.Group
	if m.FileRegex != "" || m.FilePattern != "" || m.Description != "" {
		e.Options = &GroupOptions{
			FileRegex:   m.FileRegex,
			FilePattern: m.FilePattern,
			Description: m.Description,
		}
	}
	return nil
}

// MarshalYAML emits the scalar form for unrestricted entries.
func (e GroupEntry) MarshalYAML() (any, error) {
	if e.Options == nil {
		return e.Group, nil
	}
	return groupEntryYAML{
		Group:       e.Group,
		FileRegex:   e.Options.FileRegex,
		FilePattern: e.Options.FilePattern,
		Description: e.Options.Description,
	}, nil
}

// Config describes one operating mode: which tool groups it grants and
// under what restrictions. Configs are read-only inputs to the policy
// gate; nothing in this module mutates them after load.
type Config struct {
	Slug        string       `yaml:"slug" json:"slug"`
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Groups      []GroupEntry `yaml:"groups" json:"groups"`
}

// Validate checks that the config has a well-formed slug, a name, known
// groups, and compilable restrictions.
func (c *Config) Validate() error {
	if c.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	if !slugPattern.MatchString(c.Slug) {
		return fmt.Errorf("invalid slug %q: must be lowercase letters, digits, and hyphens", c.Slug)
	}
	if c.Name == "" {
		return fmt.Errorf("mode %s: name is required", c.Slug)
	}
	for _, e := range c.Groups {
		if !tool.KnownGroup(e.Group) {
			return fmt.Errorf("mode %s: unknown tool group %q", c.Slug, e.Group)
		}
		if e.Options == nil {
			continue
		}
		if e.Options.FileRegex != "" && e.Options.FilePattern != "" {
			return fmt.Errorf("mode %s: group %s sets both fileRegex and filePattern", c.Slug, e.Group)
		}
		if e.Options.FileRegex != "" {
			if _, err := regexp.Compile(e.Options.FileRegex); err != nil {
				return fmt.Errorf("mode %s: group %s: invalid fileRegex: %w", c.Slug, e.Group, err)
			}
		}
		if e.Options.FilePattern != "" {
			if !doublestar.ValidatePattern(e.Options.FilePattern) {
				return fmt.Errorf("mode %s: group %s: invalid filePattern %q", c.Slug, e.Group, e.Options.FilePattern)
			}
		}
	}
	return nil
}

// builtins are the modes every installation ships with.
var builtins = []Config{
	{
		Slug:        "code",
		Name:        "Code",
		Description: "Write, refactor, and debug code with full tool access",
		Groups: []GroupEntry{
			{Group: tool.GroupRead},
			{Group: tool.GroupEdit},
			{Group: tool.GroupBrowser},
			{Group: tool.GroupCommand},
			{Group: tool.GroupMCP},
		},
	},
	{
		Slug:        "architect",
		Name:        "Architect",
		Description: "Plan and design before implementation; edits limited to markdown",
		Groups: []GroupEntry{
			{Group: tool.GroupRead},
			{Group: tool.GroupEdit, Options: &GroupOptions{
				FileRegex:   `\.md$`,
				Description: "Markdown files only",
			}},
			{Group: tool.GroupBrowser},
			{Group: tool.GroupMCP},
		},
	},
	{
		Slug:        "ask",
		Name:        "Ask",
		Description: "Answer questions without modifying anything",
		Groups: []GroupEntry{
			{Group: tool.GroupRead},
			{Group: tool.GroupBrowser},
			{Group: tool.GroupMCP},
		},
	},
	{
		Slug:        "debug",
		Name:        "Debug",
		Description: "Diagnose and fix problems with full tool access",
		Groups: []GroupEntry{
			{Group: tool.GroupRead},
			{Group: tool.GroupEdit},
			{Group: tool.GroupBrowser},
			{Group: tool.GroupCommand},
			{Group: tool.GroupMCP},
		},
	},
	{
		Slug:        "orchestrator",
		Name:        "Orchestrator",
		Description: "Coordinate sub-tasks; delegates all real work",
		Groups:      []GroupEntry{},
	},
}

// Builtins returns a copy of the built-in mode configurations.
func Builtins() []Config {
	out := make([]Config, len(builtins))
	copy(out, builtins)
	return out
}

// Find resolves a mode slug against custom modes first, then built-ins.
// A custom mode with a built-in slug overrides the built-in definition.
func Find(slug string, custom []Config) (Config, bool) {
	for _, c := range custom {
		if c.Slug == slug {
			return c, true
		}
	}
	for _, c := range builtins {
		if c.Slug == slug {
			return c, true
		}
	}
	return Config{}, false
}
