package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadline/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all variants",
	Long:  `Shows every registered game variant.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	variants := registry.List()
	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	width := len("ID")
	for _, v := range variants {
		width = max(width, len(v.ID))
	}

	fmt.Println("Available variants:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", width, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", width, "--", "-----")
	for _, v := range variants {
		fmt.Printf("  %-*s  %s\n", width, v.ID, v.Title)
	}
	fmt.Println()
	fmt.Println("Run 'deadline play <id>' to play a variant.")
}
