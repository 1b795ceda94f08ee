package commands

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"procurement/internal/config"
	apphttp "procurement/internal/http"
	"procurement/internal/repos"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
			} else {
				log.SetOutput(io.MultiWriter(os.Stdout, f))
			}
		}

		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return err
		}

		app := apphttp.NewApp(db, cfg)
		return app.Listen(":" + cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
