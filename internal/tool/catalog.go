// Package tool defines the closed catalog of tools the host can invoke
// and their group classification.
package tool

import "sort"

// Tool group identifiers. A mode grants tools by listing groups.
const (
	GroupRead    = "read"
	GroupEdit    = "edit"
	GroupBrowser = "browser"
	GroupCommand = "command"
	GroupMCP     = "mcp"
	GroupModes   = "modes"
)

// Groups maps each group to its member tools.
var Groups = map[string][]string{
	GroupRead: {
		"read_file",
		"search_files",
		"list_files",
		"list_code_definition_names",
		"codebase_search",
	},
	GroupEdit: {
		"write_to_file",
		"apply_diff",
		"insert_content",
		"search_and_replace",
	},
	GroupBrowser: {
		"browser_action",
	},
	GroupCommand: {
		"execute_command",
	},
	GroupMCP: {
		"use_mcp_tool",
		"access_mcp_resource",
	},
	GroupModes: {
		"switch_mode",
		"new_task",
	},
}

// alwaysAvailable tools are permitted in every mode, regardless of groups.
var alwaysAvailable = map[string]bool{
	"ask_followup_question": true,
	"attempt_completion":    true,
	"switch_mode":           true,
	"new_task":              true,
}

// membership is the group -> tool set index built from Groups.
var membership = func() map[string]map[string]bool {
	m := make(map[string]map[string]bool, len(Groups))
	for group, tools := range Groups {
		set := make(map[string]bool, len(tools))
		for _, name := range tools {
			set[name] = true
		}
		m[group] = set
	}
	return m
}()

// InGroup reports whether the named tool belongs to the given group.
func InGroup(name, group string) bool {
	return membership[group][name]
}

// KnownGroup reports whether group is a defined tool group.
func KnownGroup(group string) bool {
	_, ok := Groups[group]
	return ok
}

// IsAlwaysAvailable reports whether the tool is permitted in every mode.
func IsAlwaysAvailable(name string) bool {
	return alwaysAvailable[name]
}

// IsReadOnly reports whether the tool only reads data without modifications.
func IsReadOnly(name string) bool {
	return membership[GroupRead][name] || alwaysAvailable[name]
}

// Known reports whether name belongs to the catalog.
func Known(name string) bool {
	if alwaysAvailable[name] {
		return true
	}
	for _, set := range membership {
		if set[name] {
			return true
		}
	}
	return false
}

// Names returns every tool in the catalog, sorted.
func Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tools := range Groups {
		for _, name := range tools {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	for name := range alwaysAvailable {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// GroupNames returns the defined group identifiers, sorted.
func GroupNames() []string {
	names := make([]string, 0, len(Groups))
	for group := range Groups {
		names = append(names, group)
	}
	sort.Strings(names)
	return names
}
