// Command wishlist runs the wishlist API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
)

// Global flags available to all subcommands.
var configFile string

func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates the root command. Running it without a subcommand
// starts the server.
func NewRootCmd() *cobra.Command {
	serve := NewServeCmd()

	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Wishlist API - track products and their prices",
		Long: `Wishlist is a multi-user REST API for organizing wanted products
into collections and tracking how their prices change over time.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
