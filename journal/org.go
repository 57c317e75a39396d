package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block with the
// structured facts in a PROPERTIES drawer.
func FormatTradeOrg(t TradeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s %s %d @ %.2f (%s)\n", t.Symbol, t.Side, t.Quantity, t.Price, shortID(t.TradeID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":TRADE_ID: %s\n", t.TradeID)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", t.Symbol)
	fmt.Fprintf(&b, ":SIDE: %s\n", t.Side)
	fmt.Fprintf(&b, ":QUANTITY: %d\n", t.Quantity)
	fmt.Fprintf(&b, ":PRICE: %.4f\n", t.Price)
	fmt.Fprintf(&b, ":NOTIONAL: %.2f\n", t.Price*float64(t.Quantity))
	fmt.Fprintf(&b, ":TIME: %s\n", t.Time.UTC().Format(time.RFC3339))
	b.WriteString(":END:\n")
	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	if len(trades) == 0 {
		return "No trades."
	}
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// FormatIndexOrg renders index snapshots as an Org table.
func FormatIndexOrg(snaps []IndexSnapshot) string {
	var b strings.Builder
	b.WriteString("| Time | GBCE | Symbols |\n")
	b.WriteString("|------+------+---------|\n")
	for _, s := range snaps {
		fmt.Fprintf(&b, "| %s | %.4f | %d |\n", s.Time.UTC().Format(time.RFC3339), s.Index, s.Symbols)
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
