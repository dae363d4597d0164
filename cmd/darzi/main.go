package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/priyadarshi/darzi/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "darzi",
	Short: "Darzi — tailoring shop management backend",
	Long:  "Darzi manages customers, orders, measurements, and order progress for a tailoring shop.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
