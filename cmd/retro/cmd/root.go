// Package cmd implements the retro CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retrohunt/retro-hunter/internal/agent"
	"github.com/retrohunt/retro-hunter/internal/auth"
	"github.com/retrohunt/retro-hunter/internal/collections"
	"github.com/retrohunt/retro-hunter/internal/config"
	"github.com/retrohunt/retro-hunter/internal/currency"
	"github.com/retrohunt/retro-hunter/pkg/logger"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "retro",
		Short: "CLI client for Retro Hunter",
		Long: "retro is a command-line client for the Retro Hunter backend.\n" +
			"It searches current retro-game prices, identifies games from\n" +
			"photos, and manages your collection and wishlist.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.retro.yaml)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("currency", "USD", "display currency (USD, EUR)")

	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("currency", rootCmd.PersistentFlags().Lookup("currency")))

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(collectionCmd())
	rootCmd.AddCommand(foldersCmd())
	rootCmd.AddCommand(rateCmd())
	rootCmd.AddCommand(refreshCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".retro")
	}

	viper.SetEnvPrefix("RETRO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// app bundles the wired clients every subcommand needs.
type app struct {
	cfg        *config.Config
	log        *slog.Logger
	tokens     *auth.FileStore
	auth       *auth.Client
	agent      *agent.Client
	limiter    *agent.Limiter
	collection *collections.Client
	rates      *currency.Converter
}

// newApp loads configuration and wires the clients. Config comes from the
// viper-managed file when one was read, otherwise defaults.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	tokens := auth.NewFileStore(filepath.Join(home, ".retro", "token"))

	limiter := agent.NewLimiter(
		cfg.Agent.RateLimit.PerSecond,
		cfg.Agent.RateLimit.Burst,
		cfg.Agent.RateLimit.DailyLimit,
	)

	return &app{
		cfg:    cfg,
		log:    log,
		tokens: tokens,
		auth:   auth.NewClient(cfg.Backend.AuthURL, auth.WithLogger(log)),
		agent: agent.New(cfg.Agent.BaseURL,
			agent.WithLimiter(limiter),
			agent.WithLogger(log),
		),
		limiter: limiter,
		collection: collections.New(cfg.Backend.BaseURL, tokens,
			collections.WithRoutes(cfg.Backend.Routes),
			collections.WithLogger(log),
		),
		rates: currency.New(
			currency.WithProviderURL(cfg.Currency.ProviderURL),
			currency.WithLogger(log),
		),
	}, nil
}

// currentUser resolves the signed-in account from the stored token.
func currentUser(cmd *cobra.Command, a *app) (domain.User, error) {
	token, err := a.tokens.Token()
	if err != nil {
		return domain.User{}, err
	}
	return a.auth.Verify(cmd.Context(), token)
}

func loadConfig() (*config.Config, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return config.Load(used)
	}
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.Default(), nil
}
