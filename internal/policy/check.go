package policy

import (
	"fmt"

	"github.com/yanmxa/modegate/internal/mode"
)

// ToolNotAllowedError reports a tool use denied by the current mode.
type ToolNotAllowedError struct {
	Tool   string
	Mode   string
	Reason Reason
}

// Error returns the denial message. The phrasing is load-bearing:
// error-reporting layers pattern-match on it, so it must not change.
func (e *ToolNotAllowedError) Error() string {
	return fmt.Sprintf("Tool %q is not allowed in %s mode.", e.Tool, e.Mode)
}

// CheckToolUse validates that toolName may be invoked while operating in
// the mode named by slug. customModes may be empty; nil requirements and
// params mean no additional constraints. It returns nil when the tool is
// allowed and a *ToolNotAllowedError when it is not.
//
// The decision is a pure function of its inputs: no state is read or
// written, and concurrent calls are safe.
func CheckToolUse(toolName, slug string, customModes []mode.Config, requirements map[string]bool, params map[string]any) error {
	allowed, reason := resolve(toolName, slug, customModes, requirements, params)
	if !allowed {
		return &ToolNotAllowedError{Tool: toolName, Mode: slug, Reason: reason}
	}
	return nil
}
