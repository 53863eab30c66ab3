package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"saham-analyst/internal/cache"
	"saham-analyst/internal/chat"
	"saham-analyst/internal/config"
	"saham-analyst/internal/logging"
	"saham-analyst/internal/resolver"
	"saham-analyst/internal/store"
	"saham-analyst/internal/universe"
	"saham-analyst/internal/webhook"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    store.Store
	Cache    *cache.AnalysisCache
	Webhook  *webhook.Client
	Resolver *resolver.Resolver
	Dir      *universe.Directory
	Session  *chat.Session
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Dir = universe.MustLoad()
	app.Resolver = resolver.New(app.Dir)

	app.Webhook = webhook.NewClient(webhook.Config{
		AnalysisURL: cfg.Webhook.AnalysisURL,
		NewsURL:     cfg.Webhook.NewsURL,
		Timeout:     cfg.Webhook.Timeout,
	}, logger)

	if cfg.Cache.DBPath != "" {
		sqliteStore, err := store.NewSQLiteStore(cfg.Cache.DBPath)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to open cache database, falling back to in-memory cache")
			app.Store = store.NewMemoryStore()
		} else {
			app.Store = sqliteStore
			logger.Debug().Str("path", cfg.Cache.DBPath).Msg("SQLite cache store initialized")
		}
	} else {
		app.Store = store.NewMemoryStore()
	}

	app.Cache = cache.New(app.Store, app.Webhook, cache.Options{
		StaleThreshold: cfg.Cache.StaleThreshold,
		FetchBound:     cfg.Webhook.Timeout + 5*time.Second,
	}, logger)

	app.Session = chat.NewSession(app.Resolver, app.Cache, app.Dir, cfg.UI.ShowAge, logger)

	rootCmd := &cobra.Command{
		Use:   "saham",
		Short: "Saham Analyst - AI stock analysis assistant for the IDX",
		Long: `Saham Analyst is an AI-powered analysis assistant for Indonesian stocks.

Type a stock code (or a question containing one) and it queries the analysis
backend, caching answers locally so repeated questions are instant.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/saham-analyst)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newAskCmd(app))
	rootCmd.AddCommand(newResolveCmd(app))
	rootCmd.AddCommand(newNewsCmd(app))
	rootCmd.AddCommand(newCacheCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Saham Analyst v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Webhook")
			output.Printf("  Analysis URL:   %s\n", orUnset(app.Config.Webhook.AnalysisURL))
			output.Printf("  News URL:       %s\n", orUnset(app.Config.Webhook.NewsURL))
			output.Printf("  Timeout:        %s\n", app.Config.Webhook.Timeout)
			output.Println()
			output.Bold("Cache")
			output.Printf("  Stale after:    %s\n", app.Config.Cache.StaleThreshold)
			output.Printf("  Database:       %s\n", orUnset(app.Config.Cache.DBPath))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	return cmd
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
