package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybook/core/cmd/api/commands"
)

// @title Daybook API
// @version 1.0
// @description Personal calendar and shopping list backend with server-side grid layout

// @contact.name Daybook
// @contact.url https://github.com/daybook/core

// @license.name MIT
// @license.url https://github.com/daybook/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "daybook",
		Short: "Daybook API Server",
		Long:  `Daybook is a personal productivity backend: a calendar with a laid-out time grid, plus shopping lists and a document scanner.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
