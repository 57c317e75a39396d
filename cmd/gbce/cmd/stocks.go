package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rustyeddy/gbce/market"
	"github.com/spf13/cobra"
)

var stocksCmd = &cobra.Command{
	Use:   "stocks",
	Short: "List the stock catalog",
	Long: `Load the stock catalog CSV and print it.

Example:
  gbce stocks --stocks sample_data.csv`,
	Args: cobra.NoArgs,
	RunE: runStocks,
}

func init() {
	rootCmd.AddCommand(stocksCmd)
}

func runStocks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	printStocks(cmd.OutOrStdout(), cat)
	return nil
}

func printStocks(out io.Writer, cat *market.Catalog) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tTYPE\tLAST DIV\tFIXED DIV\tPAR")
	for _, sym := range cat.Symbols() {
		s, ok := cat.Get(sym)
		if !ok {
			continue
		}
		last, fixed := "-", "-"
		switch d := s.Dividend.(type) {
		case market.Common:
			last = fmt.Sprintf("%g", d.LastDividend)
		case market.Preferred:
			fixed = fmt.Sprintf("%.4g%%", d.FixedDividend*100)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\n", s.Symbol, s.Type(), last, fixed, s.ParValue)
	}
	tw.Flush()
}
