package policy

import (
	"testing"

	"github.com/yanmxa/modegate/internal/mode"
)

func TestResolveBuiltinModes(t *testing.T) {
	tests := []struct {
		name string
		tool string
		mode string
		want bool
	}{
		{"code allows edit", "apply_diff", "code", true},
		{"code allows command", "execute_command", "code", true},
		{"ask allows read", "read_file", "ask", true},
		{"ask allows browser", "browser_action", "ask", true},
		{"ask allows mcp", "use_mcp_tool", "ask", true},
		{"ask denies command", "execute_command", "ask", false},
		{"ask denies edit", "write_to_file", "ask", false},
		{"debug allows command", "execute_command", "debug", true},
		{"orchestrator denies read", "read_file", "orchestrator", false},
		{"orchestrator allows new_task", "new_task", "orchestrator", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsToolAllowedForMode(tt.tool, tt.mode, nil, nil, nil)
			if got != tt.want {
				t.Errorf("IsToolAllowedForMode(%q, %q) = %v, want %v", tt.tool, tt.mode, got, tt.want)
			}
		})
	}
}

func TestResolveAlwaysAvailable(t *testing.T) {
	// Always-available tools pass in every mode, even unknown ones.
	for _, slug := range []string{"code", "ask", "orchestrator", "no-such-mode"} {
		if !IsToolAllowedForMode("ask_followup_question", slug, nil, nil, nil) {
			t.Errorf("ask_followup_question denied in %s mode", slug)
		}
	}
}

func TestResolveUnknownMode(t *testing.T) {
	allowed, reason := resolve("read_file", "no-such-mode", nil, nil, nil)
	if allowed {
		t.Fatal("read_file allowed in unknown mode, want denial")
	}
	if reason != ReasonModeNotFound {
		t.Errorf("reason = %q, want %q", reason, ReasonModeNotFound)
	}
}

func TestResolveRequirements(t *testing.T) {
	requirements := map[string]bool{
		"apply_diff":    false,
		"write_to_file": true,
		"switch_mode":   false,
	}

	tests := []struct {
		name       string
		tool       string
		want       bool
		wantReason Reason
	}{
		{"disabled tool denied in permissive mode", "apply_diff", false, ReasonRequirementUnmet},
		{"enabled requirement passes", "write_to_file", true, ""},
		{"requirement vetoes always-available", "switch_mode", false, ReasonRequirementUnmet},
		{"unlisted tool unaffected", "read_file", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, reason := resolve(tt.tool, "code", nil, requirements, nil)
			if allowed != tt.want {
				t.Errorf("allowed = %v, want %v", allowed, tt.want)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestResolveCustomModeOverridesBuiltin(t *testing.T) {
	custom := []mode.Config{{
		Slug: "code", Name: "Restricted Code",
		Groups: []mode.GroupEntry{{Group: "read"}},
	}}

	if IsToolAllowedForMode("execute_command", "code", custom, nil, nil) {
		t.Error("execute_command allowed in overridden code mode, want denial")
	}
	if !IsToolAllowedForMode("read_file", "code", custom, nil, nil) {
		t.Error("read_file denied in overridden code mode, want allow")
	}
}

func TestResolveFileRestrictions(t *testing.T) {
	custom := []mode.Config{
		{
			Slug: "docs-regex", Name: "Docs (regex)",
			Groups: []mode.GroupEntry{
				{Group: "read"},
				{Group: "edit", Options: &mode.GroupOptions{FileRegex: `\.md$`}},
			},
		},
		{
			Slug: "docs-glob", Name: "Docs (glob)",
			Groups: []mode.GroupEntry{
				{Group: "edit", Options: &mode.GroupOptions{FilePattern: "docs/**"}},
			},
		},
	}

	tests := []struct {
		name       string
		tool       string
		mode       string
		params     map[string]any
		want       bool
		wantReason Reason
	}{
		{"regex match via path", "apply_diff", "docs-regex", map[string]any{"path": "README.md"}, true, ""},
		{"regex match via file_path", "apply_diff", "docs-regex", map[string]any{"file_path": "notes/plan.md"}, true, ""},
		{"regex mismatch", "apply_diff", "docs-regex", map[string]any{"path": "main.go"}, false, ReasonFileRestricted},
		{"no path param is unrestricted", "apply_diff", "docs-regex", nil, true, ""},
		{"non-string path is unrestricted", "apply_diff", "docs-regex", map[string]any{"path": 42}, true, ""},
		{"glob match", "write_to_file", "docs-glob", map[string]any{"path": "docs/guide/intro.md"}, true, ""},
		{"glob mismatch", "write_to_file", "docs-glob", map[string]any{"path": "src/main.go"}, false, ReasonFileRestricted},
		{"restriction does not leak to other groups", "read_file", "docs-regex", map[string]any{"path": "main.go"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, reason := resolve(tt.tool, tt.mode, custom, nil, tt.params)
			if allowed != tt.want {
				t.Errorf("allowed = %v, want %v", allowed, tt.want)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestResolveRepeatedGroupEntries(t *testing.T) {
	// Two entries for the same group act as alternatives: the call is
	// allowed if either restriction accepts the path.
	custom := []mode.Config{{
		Slug: "split", Name: "Split",
		Groups: []mode.GroupEntry{
			{Group: "edit", Options: &mode.GroupOptions{FileRegex: `\.md$`}},
			{Group: "edit", Options: &mode.GroupOptions{FileRegex: `\.txt$`}},
		},
	}}

	if !IsToolAllowedForMode("apply_diff", "split", custom, nil, map[string]any{"path": "a.txt"}) {
		t.Error("second entry should allow .txt edits")
	}
	if IsToolAllowedForMode("apply_diff", "split", custom, nil, map[string]any{"path": "a.go"}) {
		t.Error("no entry should allow .go edits")
	}
}
