package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanmxa/modegate/internal/config"
	"github.com/yanmxa/modegate/internal/mode"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List available modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.NewLoader().Load()
		if err != nil {
			return err
		}

		custom := make(map[string]bool, len(settings.CustomModes))
		for _, c := range settings.CustomModes {
			custom[c.Slug] = true
			printModeLine(c, "custom")
		}
		for _, c := range mode.Builtins() {
			if custom[c.Slug] {
				// Overridden by a custom definition above.
				continue
			}
			printModeLine(c, "builtin")
		}
		return nil
	},
}

var modesShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a mode's tool groups and restrictions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.NewLoader().Load()
		if err != nil {
			return err
		}

		cfg, ok := mode.Find(args[0], settings.CustomModes)
		if !ok {
			return fmt.Errorf("unknown mode %q", args[0])
		}

		fmt.Printf("%s (%s)\n", cfg.Name, cfg.Slug)
		if cfg.Description != "" {
			fmt.Printf("  %s\n", cfg.Description)
		}
		if len(cfg.Groups) == 0 {
			fmt.Println("  groups: none (always-available tools only)")
			return nil
		}
		fmt.Println("  groups:")
		for _, e := range cfg.Groups {
			line := "    - " + e.Group
			if e.Options != nil {
				switch {
				case e.Options.FileRegex != "":
					line += fmt.Sprintf(" (fileRegex: %s)", e.Options.FileRegex)
				case e.Options.FilePattern != "":
					line += fmt.Sprintf(" (filePattern: %s)", e.Options.FilePattern)
				}
				if e.Options.Description != "" {
					line += ": " + e.Options.Description
				}
			}
			fmt.Println(line)
		}
		return nil
	},
}

func printModeLine(c mode.Config, origin string) {
	fmt.Printf("%-16s %-10s %s\n", c.Slug, origin, c.Description)
}

func init() {
	modesCmd.AddCommand(modesShowCmd)
	rootCmd.AddCommand(modesCmd)
}
