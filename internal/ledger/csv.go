package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/rebal/internal/vr"
)

const dateLayout = "2006-01-02 15:04:05"

var recommendationHeader = []string{
	"date", "ticker", "price", "pv", "v_next", "band_low", "band_high",
	"action", "qty", "amount", "r", "band", "contrib", "pool", "shares", "d",
}

var tradeHeader = []string{"date", "side", "qty", "fill_price", "notional", "note"}

// CSVRecommendationStore appends recommendation rows to a CSV file.
// Writes are serialized with a mutex so concurrent appends cannot interleave
// records.
type CSVRecommendationStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVRecommendationStore creates a store writing to dataDir/vr_log.csv
func NewCSVRecommendationStore(dataDir string) *CSVRecommendationStore {
	return &CSVRecommendationStore{path: filepath.Join(dataDir, "vr_log.csv")}
}

// Append writes one row, creating the file with a header when missing.
func (s *CSVRecommendationStore) Append(_ context.Context, rec Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return appendCSVRow(s.path, recommendationHeader, []string{
		rec.Date.Format(dateLayout),
		rec.Ticker,
		formatFloat(rec.Price),
		formatFloat(rec.PV),
		formatFloat(rec.VNext),
		formatFloat(rec.BandLow),
		formatFloat(rec.BandHigh),
		string(rec.Action),
		strconv.FormatInt(rec.Qty, 10),
		formatFloat(rec.Amount),
		formatFloat(rec.R),
		formatFloat(rec.Band),
		formatFloat(rec.Contrib),
		formatFloat(rec.Pool),
		strconv.FormatInt(rec.Shares, 10),
		formatFloat(rec.D),
	})
}

// List reads the whole log back. A missing file is an empty log, not an
// error.
func (s *CSVRecommendationStore) List(_ context.Context) ([]Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := readCSVRows(s.path, len(recommendationHeader))
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(records))
	for _, row := range records {
		rec, err := parseRecommendationRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", row, err)
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

func parseRecommendationRow(row []string) (Recommendation, error) {
	date, err := time.Parse(dateLayout, row[0])
	if err != nil {
		return Recommendation{}, fmt.Errorf("parse date: %w", err)
	}

	floats := make([]float64, 0, 10)
	for _, idx := range []int{2, 3, 4, 5, 6, 9, 10, 11, 12, 13} {
		f, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return Recommendation{}, fmt.Errorf("parse column %d: %w", idx, err)
		}
		floats = append(floats, f)
	}

	qty, err := strconv.ParseInt(row[8], 10, 64)
	if err != nil {
		return Recommendation{}, fmt.Errorf("parse qty: %w", err)
	}
	shares, err := strconv.ParseInt(row[14], 10, 64)
	if err != nil {
		return Recommendation{}, fmt.Errorf("parse shares: %w", err)
	}
	d, err := strconv.ParseFloat(row[15], 64)
	if err != nil {
		return Recommendation{}, fmt.Errorf("parse d: %w", err)
	}

	return Recommendation{
		Date:     date,
		Ticker:   row[1],
		Price:    floats[0],
		PV:       floats[1],
		VNext:    floats[2],
		BandLow:  floats[3],
		BandHigh: floats[4],
		Action:   vr.Action(row[7]),
		Qty:      qty,
		Amount:   floats[5],
		R:        floats[6],
		Band:     floats[7],
		Contrib:  floats[8],
		Pool:     floats[9],
		Shares:   shares,
		D:        d,
	}, nil
}

// CSVTradeStore appends manually confirmed trades to a CSV file.
type CSVTradeStore struct {
	path string
	mu   sync.Mutex
}

// NewCSVTradeStore creates a store writing to dataDir/trades.csv
func NewCSVTradeStore(dataDir string) *CSVTradeStore {
	return &CSVTradeStore{path: filepath.Join(dataDir, "trades.csv")}
}

// Append writes one trade row, creating the file with a header when missing.
func (s *CSVTradeStore) Append(_ context.Context, trade Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return appendCSVRow(s.path, tradeHeader, []string{
		trade.Date.Format(dateLayout),
		string(trade.Side),
		strconv.FormatInt(trade.Qty, 10),
		trade.FillPrice.String(),
		trade.Notional.String(),
		trade.Note,
	})
}

// List reads the whole trade log back.
func (s *CSVTradeStore) List(_ context.Context) ([]Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := readCSVRows(s.path, len(tradeHeader))
	if err != nil {
		return nil, err
	}

	trades := make([]Trade, 0, len(records))
	for _, row := range records {
		date, err := time.Parse(dateLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", row[0], err)
		}
		qty, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse qty %q: %w", row[2], err)
		}
		fillPrice, err := decimal.NewFromString(row[3])
		if err != nil {
			return nil, fmt.Errorf("parse fill_price %q: %w", row[3], err)
		}
		notional, err := decimal.NewFromString(row[4])
		if err != nil {
			return nil, fmt.Errorf("parse notional %q: %w", row[4], err)
		}

		trades = append(trades, Trade{
			Date:      date,
			Side:      vr.Action(row[1]),
			Qty:       qty,
			FillPrice: fillPrice,
			Notional:  notional,
			Note:      row[5],
		})
	}

	return trades, nil
}

// appendCSVRow opens path in append mode, writing the header first when the
// file does not exist yet.
func appendCSVRow(path string, header, row []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	w.Flush()
	return w.Error()
}

// readCSVRows reads all data rows, skipping the header. A missing file
// yields no rows.
func readCSVRows(path string, wantCols int) ([][]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = wantCols

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
