package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"skraper/internal/app"
	"skraper/internal/config"
	"skraper/internal/logger"
)

var (
	backend string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "skraperctl",
	Short: "skraperctl - Run the scraping pipeline from the command line",
	Long: `skraperctl runs the same detection, scraping and analysis pipeline as the
API server, printing JSON to stdout. Configuration comes from the environment
and an optional .env file, like the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		return logger.Initialize("debug", "")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Scraper backend: yt-dlp, skraper or fixture (defaults to SCRAPER_BACKEND)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline activity")

	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(scrapeCmd)
}

// loadApp loads configuration, applies flag overrides and wires the pipeline
func loadApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if backend != "" {
		cfg.Scraper.Backend = backend
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return app.New(cfg)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
