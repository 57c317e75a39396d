package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/gbce/config"
	"github.com/rustyeddy/gbce/exchange"
	"github.com/rustyeddy/gbce/internal/logging"
	"github.com/rustyeddy/gbce/journal"
	"github.com/rustyeddy/gbce/market"
)

var rootCmd = &cobra.Command{
	Use:   "gbce",
	Short: "A tiny stock exchange with dividend, P/E, VWP and GBCE index calculations",
	Long: `gbce keeps a catalog of stocks, records buy and sell trades against them
and computes market metrics from the recorded trades:

  - Dividend yield and P/E ratio at a given price
  - Volume weighted price over a trailing window (default 5 minutes)
  - The GBCE all share index, the geometric mean of every traded
    stock's volume weighted price

Trades can be recorded from the interactive shell or over the HTTP API.`,
	SilenceUsage: true,
}

var (
	cfgFile    string
	logLevel   string
	sampleData string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warning, error")
	rootCmd.PersistentFlags().StringVar(&sampleData, "stocks", "", "stock catalog CSV (overrides exchange.sample_data)")
}

// loadConfig resolves the config file, environment and command line flags,
// in that order, and installs the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cfg); err != nil {
		return nil, err
	}
	logging.Setup(os.Stderr, cfg.LogLevel)
	return cfg, nil
}

// applyFlags overlays the persistent flags and validates the result.
func applyFlags(cfg *config.Config) error {
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if sampleData != "" {
		cfg.Exchange.SampleData = sampleData
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func loadCatalog(cfg *config.Config) (*market.Catalog, error) {
	cat := market.NewCatalog()
	if cfg.Exchange.SampleData == "" {
		return cat, nil
	}
	stocks, err := market.LoadStocksFile(cfg.Exchange.SampleData)
	if err != nil {
		return nil, fmt.Errorf("load stocks: %w", err)
	}
	for _, s := range stocks {
		cat.Add(s)
	}
	slog.Info("stocks loaded", slog.String("file", cfg.Exchange.SampleData), slog.Int("count", len(stocks)))
	return cat, nil
}

// openExchange builds the exchange and its journal. The caller closes the
// journal.
func openExchange(cfg *config.Config) (*exchange.Exchange, journal.Journal, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}
	return exchange.New(cat, exchange.WithJournal(j)), j, nil
}
