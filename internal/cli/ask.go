package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"saham-analyst/internal/chat"
	"saham-analyst/internal/models"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <text>",
		Short: "Ask for an analysis of a stock",
		Long: `Resolve a ticker from free-form text and fetch its analysis.

Fresh cached answers are served instantly. Stale answers are served instantly
too, while a refresh runs in the background. Only a first-time question blocks
on the analysis backend.`,
		Example: `  saham ask BBCA
  saham ask "gimana kabar BBCA hari ini"
  saham ask TLKM --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			reply := app.Session.Ask(ctx, strings.Join(args, " "))

			if output.IsJSON() {
				return output.JSON(reply)
			}

			switch reply.Outcome {
			case chat.OutcomeAnalysis:
				if reply.Ticker != "" {
					header := reply.Ticker
					if reply.Sector != "" {
						header += "  ·  " + reply.Sector + " / " + reply.Industry
					}
					output.Bold("%s", header)
				}
				output.Println(reply.Text)
				if reply.Source == models.SourceCache {
					output.Dim("served from cache")
				}
			case chat.OutcomeClarify:
				output.Warning("%s", reply.Text)
			case chat.OutcomeNotFound:
				output.Warning("%s", reply.Text)
			default:
				output.Error("%s", reply.Text)
			}
			return nil
		},
	}
}

func newResolveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <text>",
		Short: "Show which ticker would be detected in a piece of text",
		Example: `  saham resolve "minta analisa XPLR"
  saham resolve "saham apa yang bagus"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			text := strings.Join(args, " ")

			ticker, ok := app.Resolver.Resolve(text)
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"ticker":   ticker,
					"resolved": ok,
				})
			}

			if !ok {
				output.Warning("No ticker recognized.")
				return nil
			}
			if info, known := app.Dir.Lookup(ticker); known {
				output.Success("%s (%s / %s)", ticker, info.Sector, info.Industry)
			} else {
				output.Success("%s (not in directory, heuristic match)", ticker)
			}
			return nil
		},
	}
}
