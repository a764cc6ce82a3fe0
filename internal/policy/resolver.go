// Package policy decides whether a tool call is permitted in the current
// operating mode.
package policy

import (
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yanmxa/modegate/internal/mode"
	"github.com/yanmxa/modegate/internal/tool"
)

// Reason is a machine-readable cause for a denial.
type Reason string

const (
	// ReasonRequirementUnmet means a capability flag required by the tool
	// is disabled in the current environment.
	ReasonRequirementUnmet Reason = "requirement_unmet"

	// ReasonModeNotFound means the mode slug matched neither a custom nor
	// a built-in mode.
	ReasonModeNotFound Reason = "mode_not_found"

	// ReasonFileRestricted means the mode grants the tool's group, but the
	// file-path parameter fails the group's restriction.
	ReasonFileRestricted Reason = "file_restricted"

	// ReasonToolNotInMode means no group granted by the mode contains the
	// tool.
	ReasonToolNotInMode Reason = "tool_not_in_mode"
)

// IsToolAllowedForMode reports whether toolName may run while operating
// in the mode named by slug. It is the capability resolver behind
// CheckToolUse and follows the same input conventions: nil requirements
// and params mean no additional constraints.
func IsToolAllowedForMode(toolName, slug string, customModes []mode.Config, requirements map[string]bool, params map[string]any) bool {
	allowed, _ := resolve(toolName, slug, customModes, requirements, params)
	return allowed
}

// resolve evaluates the mode rules in priority order:
//
//  1. requirement flags veto the tool outright
//  2. always-available tools pass in any mode
//  3. the slug must name a custom or built-in mode
//  4. some granted group must contain the tool
//  5. the group's file restriction, if any, must accept the path param
func resolve(toolName, slug string, customModes []mode.Config, requirements map[string]bool, params map[string]any) (bool, Reason) {
	if enabled, ok := requirements[toolName]; ok && !enabled {
		return false, ReasonRequirementUnmet
	}

	if tool.IsAlwaysAvailable(toolName) {
		return true, ""
	}

	cfg, ok := mode.Find(slug, customModes)
	if !ok {
		return false, ReasonModeNotFound
	}

	restricted := false
	for _, entry := range cfg.Groups {
		if !tool.InGroup(toolName, entry.Group) {
			continue
		}
		if restrictionAllows(entry.Options, params) {
			return true, ""
		}
		restricted = true
	}

	if restricted {
		return false, ReasonFileRestricted
	}
	return false, ReasonToolNotInMode
}

// pathParam extracts the file-path argument a restriction applies to.
func pathParam(params map[string]any) (string, bool) {
	for _, key := range []string{"path", "file_path"} {
		if v, ok := params[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// restrictionAllows evaluates a group entry's file restriction against the
// call params. A call without a path param is not restricted.
func restrictionAllows(opts *mode.GroupOptions, params map[string]any) bool {
	if opts == nil || (opts.FileRegex == "" && opts.FilePattern == "") {
		return true
	}

	path, ok := pathParam(params)
	if !ok {
		return true
	}

	if opts.FileRegex != "" {
		re, err := regexp.Compile(opts.FileRegex)
		if err != nil {
			// Invalid restrictions fail closed; Validate catches these
			// at load time.
			return false
		}
		return re.MatchString(path)
	}

	matched, err := doublestar.Match(opts.FilePattern, path)
	return err == nil && matched
}
