package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	columnAliases = map[string]string{
		"stock_symbol":   "symbol",
		"symbol":         "symbol",
		"type":           "type",
		"last_divident":  "last_dividend",
		"last_dividend":  "last_dividend",
		"fixed_divident": "fixed_dividend",
		"fixed_dividend": "fixed_dividend",
		"par_value":      "par_value",
	}
	requiredColumns = []string{"symbol", "type", "last_dividend", "fixed_dividend", "par_value"}
)

// LoadStocksFile reads a stock catalog CSV from path.
func LoadStocksFile(path string) ([]Stock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stocks file: %w", err)
	}
	defer f.Close()

	stocks, err := LoadStocksCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stocks, nil
}

// LoadStocksCSV parses rows of
//
//	stock_symbol,type,last_divident,fixed_divident,par_value
//
// Columns are located by the header row. Blank dividend fields read as zero
// and a fixed dividend written as "2%" reads as 0.02.
func LoadStocksCSV(r io.Reader) ([]Stock, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		if name, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var out []Stock
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if blankRow(row) {
			continue
		}
		line, _ := cr.FieldPos(0)

		s, err := parseStockRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseStockRow(row []string, cols map[string]int) (Stock, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	typ, err := ParseStockType(field("type"))
	if err != nil {
		return Stock{}, err
	}
	par, err := parseAmount(field("par_value"))
	if err != nil {
		return Stock{}, fmt.Errorf("par_value: %w", err)
	}

	var d Dividend
	switch typ {
	case CommonStock:
		last, err := parseAmount(field("last_dividend"))
		if err != nil {
			return Stock{}, fmt.Errorf("last_dividend: %w", err)
		}
		d = Common{LastDividend: last}
	case PreferredStock:
		fixed, err := parseAmount(field("fixed_dividend"))
		if err != nil {
			return Stock{}, fmt.Errorf("fixed_dividend: %w", err)
		}
		d = Preferred{FixedDividend: fixed}
	}

	return NewStock(field("symbol"), par, d)
}

// parseAmount reads a decimal number; "" is zero and a trailing % divides by 100.
func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	pct := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	v, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if pct {
		v = v.Div(hundred)
	}
	f, _ := v.Float64()
	return f, nil
}

func blankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
