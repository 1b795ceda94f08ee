package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"procurement/internal/config"
	"procurement/internal/repos"
	"procurement/internal/services"
)

var importCmd = &cobra.Command{
	Use:   "import <source>",
	Short: "Import a YAML price list from a file or URL",
	Long: `Import reconciles a shop's catalog against a YAML price-list
snapshot. The shop is resolved (or created) from the snapshot's own shop
name. The shop's previous offers are fully replaced.

Examples:
  procurement import ./shop1.yaml
  procurement import https://supplier.example.com/pricelist.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return err
		}

		partner := services.NewPartnerService(repos.NewShopRepo(db), repos.NewPriceListRepo(db))
		res, err := partner.ImportBatch(args[0])
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		fmt.Printf("import finished\n  shop:       %s\n  categories: %d\n  goods:      %d/%d\n",
			res.ShopName, res.Categories, res.Imported, res.Attempted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
