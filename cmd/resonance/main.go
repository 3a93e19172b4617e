// Package main provides the entry point for the resonance scoring service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resonance",
	Short: "Resonance Index scoring service",
	Long:  "Resonance scores a user-prompt / AI-response exchange along six dimensions plus an alignment multiplier, producing one composite Resonance Index.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
