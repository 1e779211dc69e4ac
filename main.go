// Package main provides a banner for the repository root.
// ooosim is a cycle-accurate functional simulator of an out-of-order
// superscalar integer pipeline with register renaming.
//
// For the full CLI, use: go run ./cmd/ooosim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("ooosim - Out-of-Order Integer Pipeline Simulator")
	fmt.Println("")
	fmt.Println("Usage: ooosim [options] <input.json> [output.json]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/ooosim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/ooosim' instead.")
	}
}
