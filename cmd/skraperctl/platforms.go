package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skraper/internal/domain/scrape"
	"skraper/internal/service/platform"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms in detection order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range platform.NewDetector().Supported() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

var detectCmd = &cobra.Command{
	Use:   "detect <url>",
	Short: "Show the platform and scraper path detected for a URL",
	Long: `Detect the platform of a URL and the path the skraper CLI would receive.

Examples:
  skraperctl detect https://www.tiktok.com/@creator
  skraperctl detect https://x.com/brand/status/1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detector := platform.NewDetector()
		name, ok := detector.Detect(args[0])
		if !ok {
			return &scrape.UnsupportedPlatformError{URL: args[0]}
		}
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"url":      args[0],
			"platform": name,
			"path":     detector.ExtractPath(args[0], name),
			"username": platform.ExtractUsername(args[0]),
		})
	},
}
