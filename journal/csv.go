package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type CSVJournal struct {
	mu     sync.Mutex
	trades *csv.Writer
	index  *csv.Writer
	tf, xf *os.File
}

var (
	tradesHeader = []string{"trade_id", "symbol", "side", "quantity", "price", "time"}
	indexHeader  = []string{"time", "index", "symbols"}
)

// NewCSV appends to the trade and index files, creating them with a header
// row when they are new or empty.
func NewCSV(tradesPath, indexPath string) (*CSVJournal, error) {
	tf, tNew, err := openAppend(tradesPath)
	if err != nil {
		return nil, err
	}
	xf, xNew, err := openAppend(indexPath)
	if err != nil {
		_ = tf.Close()
		return nil, err
	}

	j := &CSVJournal{trades: csv.NewWriter(tf), index: csv.NewWriter(xf), tf: tf, xf: xf}

	if tNew {
		if err := j.write(j.trades, tradesHeader); err != nil {
			_ = j.Close()
			return nil, err
		}
	}
	if xNew {
		if err := j.write(j.index, indexHeader); err != nil {
			_ = j.Close()
			return nil, err
		}
	}
	return j, nil
}

// openAppend reports whether the file was empty when opened.
func openAppend(path string) (*os.File, bool, error) {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, false, err
	}
	st, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, false, err
	}
	return fh, st.Size() == 0, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.write(j.trades, []string{
		t.TradeID,
		t.Symbol,
		t.Side,
		strconv.FormatInt(t.Quantity, 10),
		f(t.Price),
		t.Time.UTC().Format(time.RFC3339Nano),
	})
}

func (j *CSVJournal) RecordIndex(s IndexSnapshot) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.write(j.index, []string{
		s.Time.UTC().Format(time.RFC3339Nano),
		f(s.Index),
		strconv.Itoa(s.Symbols),
	})
}

// write flushes after every row so the files can be tailed.
func (j *CSVJournal) write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.trades.Flush()
	j.index.Flush()
	errT := j.trades.Error()
	errX := j.index.Error()
	if err := j.tf.Close(); err != nil && errT == nil {
		errT = err
	}
	if err := j.xf.Close(); err != nil && errX == nil {
		errX = err
	}
	if errT != nil {
		return errT
	}
	return errX
}

func f(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(6)
}
