package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/gbce/journal"
	"github.com/rustyeddy/gbce/market"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the trade journal",
	Long: `Query trades and index snapshots from the SQLite journal written by
"gbce serve" or "gbce shell" with journal.type: sqlite.

Subcommands:
  trade  - Get details of a specific trade by ID
  today  - List trades recorded today
  day    - List trades recorded on a specific day
  symbol - List all trades for a stock
  index  - List GBCE index snapshots for a day

Examples:
  gbce journal trade 01HZY...
  gbce journal today
  gbce journal day 2024-01-15
  gbce journal symbol TEA
  gbce journal index 2024-01-15`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades recorded today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades recorded on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalSymbolCmd = &cobra.Command{
	Use:   "symbol <SYMBOL>",
	Short: "List all trades for a stock",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSymbol,
}

var journalIndexCmd = &cobra.Command{
	Use:   "index <YYYY-MM-DD>",
	Short: "List GBCE index snapshots taken on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalIndex,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalSymbolCmd)
	journalCmd.AddCommand(journalIndexCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./gbce.sqlite", "path to SQLite journal DB")
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	return listTradesOn(cmd, time.Now().In(time.Local).Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listTradesOn(cmd, args[0])
}

func listTradesOn(cmd *cobra.Command, day string) error {
	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTradesBetween(start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}

func runJournalSymbol(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTradesBySymbol(market.NormalizeSymbol(args[0]))
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}

func runJournalIndex(cmd *cobra.Command, args []string) error {
	start, end, err := dayBounds(time.Local, args[0])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	snaps, err := j.ListIndexBetween(start, end)
	if err != nil {
		return fmt.Errorf("query index: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), journal.FormatIndexOrg(snaps))
	return nil
}

// dayBounds returns [start, end) of the calendar day in loc.
func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1), nil
}
