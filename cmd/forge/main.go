// Package main provides the entry point for the Forge founder co-pilot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Forge founder co-pilot",
	Long:  "Forge analyzes startup problems, scans sectors for opportunities, composes prioritized action plans, and chats, backed by schema-constrained Gemini generation.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
