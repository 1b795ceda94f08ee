package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "procurement",
	Short: "Procurement storefront backend",
	Long: `Procurement is a storefront backend for supplier shops and buyers:
a JSON API for catalog browsing, baskets and checkout, plus YAML
price-list ingestion for supplier shops.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
