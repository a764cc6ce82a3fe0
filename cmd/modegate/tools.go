package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanmxa/modegate/internal/tool"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tool catalog by group",
	Run: func(cmd *cobra.Command, args []string) {
		for _, group := range tool.GroupNames() {
			fmt.Printf("%-10s %s\n", group, strings.Join(tool.Groups[group], ", "))
		}

		var always []string
		for _, name := range tool.Names() {
			if tool.IsAlwaysAvailable(name) {
				always = append(always, name)
			}
		}
		fmt.Printf("%-10s %s\n", "always", strings.Join(always, ", "))
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
