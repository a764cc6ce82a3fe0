package policy

import (
	"github.com/yanmxa/modegate/internal/mode"
	"github.com/yanmxa/modegate/internal/tool"
)

// Checker decides whether a tool call is permitted.
type Checker interface {
	Check(name string, params map[string]any) Decision
}

// Decision represents a permission decision.
type Decision int

const (
	// Permit executes the tool call.
	Permit Decision = iota
	// Reject blocks the tool call.
	Reject
)

// --- Convenience constructors ---

type permitAll struct{}

func (permitAll) Check(_ string, _ map[string]any) Decision { return Permit }

// PermitAll returns a Checker that always permits.
func PermitAll() Checker { return permitAll{} }

type readOnly struct{}

func (readOnly) Check(name string, _ map[string]any) Decision {
	if tool.IsReadOnly(name) {
		return Permit
	}
	return Reject
}

// ReadOnly returns a Checker that permits read-only tools and rejects others.
func ReadOnly() Checker { return readOnly{} }

type denyAll struct{}

func (denyAll) Check(_ string, _ map[string]any) Decision { return Reject }

// DenyAll returns a Checker that always rejects.
func DenyAll() Checker { return denyAll{} }

type modeChecker struct {
	slug         string
	customModes  []mode.Config
	requirements map[string]bool
}

func (c modeChecker) Check(name string, params map[string]any) Decision {
	if IsToolAllowedForMode(name, c.slug, c.customModes, c.requirements, params) {
		return Permit
	}
	return Reject
}

// ForMode returns a Checker that applies the named mode's rules, for hosts
// that already accept a Checker where tool calls are dispatched.
func ForMode(slug string, customModes []mode.Config, requirements map[string]bool) Checker {
	return modeChecker{slug: slug, customModes: customModes, requirements: requirements}
}
