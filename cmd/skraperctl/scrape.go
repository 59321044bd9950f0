package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"skraper/internal/domain/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape a profile or post and print the result",
	Long: `Scrape a URL through the configured backend.

Examples:
  skraperctl scrape https://instagram.com/brandname --limit 10
  skraperctl scrape https://www.tiktok.com/@creator --mode enhanced
  skraperctl scrape https://x.com/brand --backend fixture --mode brand`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		contentType, _ := cmd.Flags().GetString("content-type")
		mode, _ := cmd.Flags().GetString("mode")

		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		req := scrape.Request{
			URL:         args[0],
			ContentType: contentType,
			Limit:       scrape.ClampLimit(limit),
		}

		ctx := cmd.Context()
		var result interface{}
		switch mode {
		case "basic":
			result, err = a.Pipeline.Scrape(ctx, req)
		case "enhanced":
			result, err = a.Pipeline.ScrapeEnhanced(ctx, req)
		case "brand":
			result, err = a.Pipeline.BrandAnalysis(ctx, req)
		default:
			return fmt.Errorf("unknown mode %q (want basic, enhanced or brand)", mode)
		}
		if err != nil {
			return errors.New(scrape.PublicMessage(err))
		}

		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	scrapeCmd.Flags().Int("limit", scrape.DefaultLimit, "Maximum number of posts (1-100)")
	scrapeCmd.Flags().String("content-type", scrape.ContentPosts, "Content type: posts or media-only")
	scrapeCmd.Flags().String("mode", "basic", "Response shape: basic, enhanced or brand")
}
