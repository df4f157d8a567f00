// Package main is the entry point for rondactl, the operator CLI: schema
// migration, account management and offline parsing of WhatsApp exports.
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	_ "github.com/joho/godotenv/autoload"

	"rondasapi/cmd/rondactl/internal/commands"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "rondactl",
		Short: "Operator tooling for the rondas API",
		Long: `rondactl manages the rondas database and accounts, and parses WhatsApp
exports offline. Database commands read the same DB_* and APP_TIMEZONE
environment variables as the API (a .env file is loaded when present).`,
		SilenceUsage: true,
	}

	commands.InitDatabaseCommands(rootCmd)
	commands.InitUserCommands(rootCmd)
	commands.InitParseCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}
