package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/gbce/exchange"
	"github.com/rustyeddy/gbce/market"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive menu for recording trades and computing metrics",
	Long: `Start an interactive session against an in-memory exchange loaded from
the stock catalog CSV. Trades recorded in the session are written to the
configured journal and lost from memory on exit.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	window, err := cfg.Exchange.Window()
	if err != nil {
		return err
	}
	ex, j, err := openExchange(cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	return newShell(ex, window, cmd.InOrStdin(), cmd.OutOrStdout()).run()
}

type shell struct {
	ex     *exchange.Exchange
	calc   *exchange.Calculator
	window time.Duration
	in     *bufio.Scanner
	out    io.Writer
}

func newShell(ex *exchange.Exchange, window time.Duration, in io.Reader, out io.Writer) *shell {
	return &shell{
		ex:     ex,
		calc:   ex.Calculator(),
		window: window,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

var errQuit = errors.New("quit")

// prompt returns errQuit once input is exhausted.
func (s *shell) prompt(label string) (string, error) {
	fmt.Fprintf(s.out, "%s> ", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *shell) run() error {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "1. List stocks")
		fmt.Fprintln(s.out, "2. Add a stock")
		fmt.Fprintln(s.out, "3. Select a stock")
		fmt.Fprintln(s.out, "4. GBCE all share index")
		fmt.Fprintln(s.out, "5. List all trades")
		fmt.Fprintln(s.out, "0. Exit")

		choice, err := s.prompt("")
		if err != nil {
			return quitOK(err)
		}
		switch choice {
		case "1":
			printStocks(s.out, s.ex.Catalog())
		case "2":
			err = s.addStock()
		case "3":
			err = s.selectStock()
		case "4":
			s.index()
		case "5":
			s.allTrades()
		case "0", "q", "exit":
			return nil
		default:
			fmt.Fprintf(s.out, "unknown option %q\n", choice)
		}
		if err != nil {
			return quitOK(err)
		}
	}
}

func quitOK(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (s *shell) addStock() error {
	line, err := s.prompt("symbol,type,last_dividend,fixed_dividend,par_value")
	if err != nil {
		return err
	}
	stocks, err := market.LoadStocksCSV(strings.NewReader("symbol,type,last_dividend,fixed_dividend,par_value\n" + line))
	if err != nil {
		fmt.Fprintf(s.out, "invalid stock: %v\n", err)
		return nil
	}
	if len(stocks) != 1 {
		fmt.Fprintln(s.out, "expected one stock e.g. JOE,Common,13,,250")
		return nil
	}
	s.ex.AddStock(stocks[0])
	fmt.Fprintf(s.out, "added %s\n", stocks[0].Symbol)
	return nil
}

func (s *shell) selectStock() error {
	sym, err := s.prompt("symbol")
	if err != nil {
		return err
	}
	sym = market.NormalizeSymbol(sym)
	if _, ok := s.ex.Catalog().Get(sym); !ok {
		fmt.Fprintf(s.out, "unknown stock %q\n", sym)
		return nil
	}

	for {
		fmt.Fprintln(s.out)
		fmt.Fprintf(s.out, "[%s]\n", sym)
		fmt.Fprintln(s.out, "1. Record a trade")
		fmt.Fprintln(s.out, "2. Dividend yield")
		fmt.Fprintln(s.out, "3. P/E ratio")
		fmt.Fprintf(s.out, "4. Volume weighted price (past %s)\n", s.window)
		fmt.Fprintln(s.out, "5. List trades")
		fmt.Fprintln(s.out, "0. Back")

		choice, err := s.prompt(sym)
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = s.recordTrade(sym)
		case "2":
			err = s.dividendYield(sym)
		case "3":
			err = s.peRatio(sym)
		case "4":
			s.vwp(sym)
		case "5":
			printTrades(s.out, s.ex.History(sym))
		case "0", "b", "back":
			return nil
		default:
			fmt.Fprintf(s.out, "unknown option %q\n", choice)
		}
		if err != nil {
			return err
		}
	}
}

func (s *shell) recordTrade(sym string) error {
	line, err := s.prompt("quantity,side,price")
	if err != nil {
		return err
	}
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		fmt.Fprintln(s.out, "expected quantity,side,price e.g. 10,B,125.5")
		return nil
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "invalid quantity %q\n", parts[0])
		return nil
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		fmt.Fprintf(s.out, "invalid price %q\n", parts[2])
		return nil
	}

	t, err := s.ex.RecordTrade(sym, qty, strings.TrimSpace(parts[1]), price)
	if err != nil {
		fmt.Fprintf(s.out, "trade rejected: %v\n", err)
		return nil
	}
	fmt.Fprintf(s.out, "recorded %s %s %d @ %.2f\n", t.Symbol, t.Side, t.Quantity, t.Price)
	return nil
}

func (s *shell) readPrice() (float64, bool, error) {
	line, err := s.prompt("price")
	if err != nil {
		return 0, false, err
	}
	p, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Fprintf(s.out, "invalid price %q\n", line)
		return 0, false, nil
	}
	return p, true, nil
}

func (s *shell) dividendYield(sym string) error {
	p, ok, err := s.readPrice()
	if err != nil || !ok {
		return err
	}
	y, ok, err := s.calc.DividendYield(sym, p)
	switch {
	case err != nil:
		fmt.Fprintf(s.out, "error: %v\n", err)
	case !ok:
		fmt.Fprintf(s.out, "unknown stock %q\n", sym)
	default:
		fmt.Fprintf(s.out, "dividend yield: %.4f\n", y)
	}
	return nil
}

func (s *shell) peRatio(sym string) error {
	p, ok, err := s.readPrice()
	if err != nil || !ok {
		return err
	}
	pe, err := s.calc.PERatio(sym, p)
	if err != nil {
		fmt.Fprintf(s.out, "P/E ratio: %v\n", err)
		return nil
	}
	fmt.Fprintf(s.out, "P/E ratio: %.4f\n", pe)
	return nil
}

func (s *shell) vwp(sym string) {
	v, ok, err := s.calc.VolumeWeightedPrice(sym, s.window)
	switch {
	case err != nil:
		fmt.Fprintf(s.out, "error: %v\n", err)
	case !ok:
		fmt.Fprintf(s.out, "no trades for %s in the past %s\n", sym, s.window)
	default:
		fmt.Fprintf(s.out, "volume weighted price: %.4f\n", v)
	}
}

func (s *shell) index() {
	idx, err := s.calc.Index()
	if err != nil {
		fmt.Fprintf(s.out, "GBCE: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "GBCE all share index: %.4f (%s)\n", idx.Value, strings.Join(idx.Symbols, ", "))
}

func (s *shell) allTrades() {
	syms := s.ex.SymbolsWithTrades()
	if len(syms) == 0 {
		fmt.Fprintln(s.out, "No trades.")
		return
	}
	for _, sym := range syms {
		fmt.Fprintf(s.out, "%s:\n", sym)
		printTrades(s.out, s.ex.History(sym))
	}
}

func printTrades(out io.Writer, trades []market.Trade) {
	if len(trades) == 0 {
		fmt.Fprintln(out, "No trades.")
		return
	}
	for _, t := range trades {
		fmt.Fprintf(out, "  %s %-4s %6d @ %10.2f  %s\n",
			t.Timestamp.Format(time.RFC3339), t.Side, t.Quantity, t.Price, t.ID)
	}
}
