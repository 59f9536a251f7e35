package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"chatmetrics/internal/analytics"
	"chatmetrics/internal/config"
	"chatmetrics/internal/imessage"
	"chatmetrics/internal/sentiment"
)

var (
	cfgFile   string
	debugMode bool
	dbPath    string
	verbose   bool
	cfg       *config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chatmetrics",
	Short: "Messages store analytics tool",
	Long: `chatmetrics reads the local Apple Messages store read-only and
computes aggregate statistics per conversation: word-frequency
histograms, longest-message rankings, and mean sentiment scores.

The system store at ~/Library/Messages/chat.db is used unless --debug
selects an override path. No data is ever written.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" {
			return nil
		}

		// Set up logging
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return eris.Wrap(err, "load config")
		}

		// Flags override environment, which overrides the file.
		if cmd.Flags().Changed("debug") {
			cfg.Debug = debugMode
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
			cfg.Debug = true
		}

		return nil
	},
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openAccessor opens the configured Messages store read-only.
func openAccessor() (*imessage.DB, error) {
	db, err := imessage.Open(cfg, logger)
	if err != nil {
		return nil, eris.Wrap(err, "open messages store")
	}
	return db, nil
}

// newAnalyzer wires the accessor and the lexicon scorer per config.
func newAnalyzer(db *imessage.DB) *analytics.Analyzer {
	return analytics.New(db, sentiment.Score, analytics.Options{
		FilterAttachmentsInSentiment: cfg.Sentiment.FilterAttachments,
	})
}

// identifierArg resolves the recipient identifier for a command: the
// positional argument when given, otherwise debug_email from config.
func identifierArg(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.DebugEmail != "" {
		return cfg.DebugEmail, nil
	}
	return "", fmt.Errorf("no identifier given; pass one or set debug_email in %s", cfg.ConfigFilePath())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.chatmetrics/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "read the db_path override instead of the system Messages store")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Messages store path override (implies --debug)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
