package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"saham-analyst/pkg/utils"
)

func newNewsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "news <ticker>",
		Short: "Fetch recent news for a ticker",
		Example: `  saham news BBCA
  saham news TLKM --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
			defer cancel()

			ticker := strings.ToUpper(strings.TrimSpace(args[0]))

			// News is non-critical, so transient failures get a couple of
			// retries before giving up.
			items, err := utils.RetryWithResult(ctx, utils.DefaultRetryConfig(), func() ([]string, error) {
				return app.Webhook.FetchNews(ctx, ticker)
			})
			if err != nil {
				output.Error("Failed to fetch news for %s: %v", ticker, err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"ticker": ticker,
					"items":  items,
				})
			}

			if len(items) == 0 {
				output.Warning("No news found for %s.", ticker)
				return nil
			}
			output.Bold("News for %s", ticker)
			for _, item := range items {
				output.Println()
				output.Println(item)
			}
			return nil
		},
	}
}
