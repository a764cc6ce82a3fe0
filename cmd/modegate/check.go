package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanmxa/modegate/internal/config"
	"github.com/yanmxa/modegate/internal/log"
	"github.com/yanmxa/modegate/internal/policy"
)

var (
	checkMode     string
	checkParams   []string
	checkRequires []string
)

var checkCmd = &cobra.Command{
	Use:   "check <tool>",
	Short: "Check whether a tool is allowed in a mode",
	Long: `Check validates a tool use against the mode's rules. It exits 0
when the tool is allowed and 1 with the denial message when it is not.

Tool parameters relevant to the decision (e.g. the file path an edit
targets) are passed with --param; capability flags with --require.

Examples:
  modegate check read_file --mode ask
  modegate check apply_diff --mode architect --param path=notes/design.md
  modegate check apply_diff --mode code --require apply_diff=false`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolName := args[0]

		settings, err := config.NewLoader().Load()
		if err != nil {
			return err
		}
		if err := settings.Validate(); err != nil {
			return fmt.Errorf("invalid mode configuration: %w", err)
		}

		params, err := parseParams(checkParams)
		if err != nil {
			return err
		}

		requirements, err := parseRequirements(checkRequires)
		if err != nil {
			return err
		}
		// CLI flags override configured requirement defaults.
		for k, v := range settings.ToolRequirements {
			if _, ok := requirements[k]; !ok {
				if requirements == nil {
					requirements = make(map[string]bool)
				}
				requirements[k] = v
			}
		}

		err = policy.CheckToolUse(toolName, checkMode, settings.CustomModes, requirements, params)
		if err != nil {
			log.LogDecision(toolName, checkMode, false, denialReason(err))
			return err
		}

		log.LogDecision(toolName, checkMode, true, "")
		fmt.Printf("Tool %q is allowed in %s mode.\n", toolName, checkMode)
		return nil
	},
}

// parseParams converts repeated key=value flags into tool params.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

// parseRequirements converts repeated tool=bool flags into requirement flags.
func parseRequirements(pairs []string) (map[string]bool, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	requirements := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --require %q: expected tool=true|false", pair)
		}
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid --require %q: %w", pair, err)
		}
		requirements[key] = enabled
	}
	return requirements, nil
}

func denialReason(err error) string {
	if denied, ok := err.(*policy.ToolNotAllowedError); ok {
		return string(denied.Reason)
	}
	return "unknown"
}

func init() {
	checkCmd.Flags().StringVarP(&checkMode, "mode", "m", "code", "Mode slug to check against")
	checkCmd.Flags().StringArrayVar(&checkParams, "param", nil, "Tool parameter as key=value (repeatable)")
	checkCmd.Flags().StringArrayVar(&checkRequires, "require", nil, "Capability flag as tool=true|false (repeatable)")
	rootCmd.AddCommand(checkCmd)
}
