package policy

import (
	"errors"
	"testing"

	"github.com/yanmxa/modegate/internal/mode"
)

func TestCheckToolUseAskMode(t *testing.T) {
	err := CheckToolUse("execute_command", "ask", []mode.Config{}, nil, nil)
	if err == nil {
		t.Fatal("CheckToolUse(execute_command, ask) = nil, want denial")
	}
	want := `Tool "execute_command" is not allowed in ask mode.`
	if err.Error() != want {
		t.Errorf("denial message = %q, want %q", err.Error(), want)
	}

	if err := CheckToolUse("read_file", "ask", []mode.Config{}, nil, nil); err != nil {
		t.Errorf("CheckToolUse(read_file, ask) = %v, want nil", err)
	}
}

func TestCheckToolUseErrorFields(t *testing.T) {
	err := CheckToolUse("execute_command", "ask", nil, nil, nil)

	var denied *ToolNotAllowedError
	if !errors.As(err, &denied) {
		t.Fatalf("error %T does not unwrap to *ToolNotAllowedError", err)
	}
	if denied.Tool != "execute_command" {
		t.Errorf("Tool = %q, want execute_command", denied.Tool)
	}
	if denied.Mode != "ask" {
		t.Errorf("Mode = %q, want ask", denied.Mode)
	}
	if denied.Reason != ReasonToolNotInMode {
		t.Errorf("Reason = %q, want %q", denied.Reason, ReasonToolNotInMode)
	}
}

func TestCheckToolUseOptionalInputs(t *testing.T) {
	// Nil and empty collections must behave identically.
	variants := []struct {
		name         string
		custom       []mode.Config
		requirements map[string]bool
		params       map[string]any
	}{
		{"all nil", nil, nil, nil},
		{"all empty", []mode.Config{}, map[string]bool{}, map[string]any{}},
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			if err := CheckToolUse("read_file", "ask", v.custom, v.requirements, v.params); err != nil {
				t.Errorf("read_file in ask: %v, want nil", err)
			}
			err := CheckToolUse("execute_command", "ask", v.custom, v.requirements, v.params)
			if err == nil {
				t.Error("execute_command in ask: nil, want denial")
			}
		})
	}
}

func TestCheckToolUseDeterministic(t *testing.T) {
	custom := []mode.Config{{
		Slug: "docs", Name: "Docs",
		Groups: []mode.GroupEntry{
			{Group: "read"},
			{Group: "edit", Options: &mode.GroupOptions{FileRegex: `\.md$`}},
		},
	}}
	params := map[string]any{"path": "src/main.go"}

	first := CheckToolUse("apply_diff", "docs", custom, nil, params)
	second := CheckToolUse("apply_diff", "docs", custom, nil, params)

	if first == nil || second == nil {
		t.Fatalf("expected denials, got %v and %v", first, second)
	}
	if first.Error() != second.Error() {
		t.Errorf("messages differ: %q vs %q", first.Error(), second.Error())
	}
}

func TestCheckToolUseDoesNotMutateCustomModes(t *testing.T) {
	opts := &mode.GroupOptions{FileRegex: `\.md$`}
	custom := []mode.Config{{
		Slug: "docs", Name: "Docs",
		Groups: []mode.GroupEntry{{Group: "edit", Options: opts}},
	}}

	_ = CheckToolUse("apply_diff", "docs", custom, nil, map[string]any{"path": "a.md"})
	_ = CheckToolUse("execute_command", "docs", custom, nil, nil)

	if custom[0].Slug != "docs" || len(custom[0].Groups) != 1 || custom[0].Groups[0].Options != opts {
		t.Errorf("customModes mutated: %+v", custom[0])
	}
	if opts.FileRegex != `\.md$` {
		t.Errorf("group options mutated: %+v", opts)
	}
}
