package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/novaos-app/novaos-api/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "novaos-configure",
		Short: "Configuration tool for the NovaOS API",
		Long:  "CLI tool for managing CORS, rate limiting, and other runtime settings",
	}

	rootCmd.AddCommand(commands.NewCorsCmd())
	rootCmd.AddCommand(commands.NewRatelimitCmd())
	rootCmd.AddCommand(commands.NewListCmd())
	rootCmd.AddCommand(commands.NewTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
