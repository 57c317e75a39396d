package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rustyeddy/gbce/internal/scheduler"
	"github.com/rustyeddy/gbce/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the exchange over HTTP. When snapshot.interval is non-zero the
GBCE all share index is computed on that interval and written to the
journal.

Example:
  gbce serve -c gbce.yaml --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	window, err := cfg.Exchange.Window()
	if err != nil {
		return err
	}
	interval, err := cfg.Snapshot.ParseInterval()
	if err != nil {
		return err
	}

	ex, j, err := openExchange(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if interval > 0 {
		sched, err := scheduler.New()
		if err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
		if err := sched.NewIntervalJob("index_snapshot", scheduler.IndexSnapshot(ex.Calculator(), j), interval, false); err != nil {
			return fmt.Errorf("schedule index snapshot: %w", err)
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Error("scheduler shutdown", slog.String("error", err.Error()))
			}
		}()
	}

	slog.Info("serving", slog.String("addr", cfg.Server.Addr), slog.String("journal", cfg.Journal.Type))
	return server.New(ex, window).ListenAndServe(ctx, cfg.Server.Addr)
}
