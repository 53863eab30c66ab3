package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the analysis cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			stats, err := app.Cache.Stats(ctx)
			if err != nil {
				output.Error("Failed to read cache stats: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(stats)
			}
			output.Bold("Analysis cache")
			output.Printf("  Total entries: %d\n", stats.TotalEntries)
			output.Printf("  Fresh entries: %d\n", stats.ValidEntries)
			output.Printf("  Stale after:   %s\n", app.Cache.StaleThreshold())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <ticker>",
		Short: "Invalidate the cached analysis for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			ticker := strings.ToUpper(strings.TrimSpace(args[0]))
			if err := app.Cache.Invalidate(ctx, ticker); err != nil {
				output.Error("Failed to invalidate %s: %v", ticker, err)
				return err
			}
			output.Success("Cache invalidated for %s", ticker)
			return nil
		},
	})

	return cmd
}
