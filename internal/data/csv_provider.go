package data

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// CSVProvider reads datasets from a directory laid out as
//
//	<dir>/ohlcv/<SYMBOL>.csv        timestamp,open,high,low,close,volume
//	<dir>/sentiment/<SYMBOL>.csv    timestamp,score
//	<dir>/financial/<SYMBOL>.json   models.Financials
//
// Timestamps are RFC 3339 or plain dates (2006-01-02), assumed UTC.
type CSVProvider struct {
	dir string
}

// NewCSVProvider creates a provider rooted at dir
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

func (p *CSVProvider) Name() string {
	return "csv"
}

// Load reads the OHLCV file for a symbol
func (p *CSVProvider) Load(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(p.dir, "ohlcv", symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, symbol, err)
	}
	defer file.Close()

	records, err := readCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, symbol, err)
	}

	bars := make([]models.Bar, 0, len(records))
	for i, rec := range records {
		if len(rec) < 6 {
			return nil, fmt.Errorf("%w: %s: row %d has %d fields, want 6",
				models.ErrDataUnavailable, symbol, i+1, len(rec))
		}
		ts, err := parseTimestamp(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %v", models.ErrDataUnavailable, symbol, i+1, err)
		}
		var fields [5]float64
		for j := 0; j < 5; j++ {
			fields[j], err = strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: row %d: %v", models.ErrDataUnavailable, symbol, i+1, err)
			}
		}
		bars = append(bars, models.Bar{
			Timestamp: ts,
			Open:      fields[0],
			High:      fields[1],
			Low:       fields[2],
			Close:     fields[3],
			Volume:    fields[4],
		})
	}

	series, err := models.NewPriceSeries(symbol, bars)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, symbol, err)
	}
	return series, nil
}

// Sentiment reads the sentiment file for a symbol; a missing file means
// no coverage, not an error
func (p *CSVProvider) Sentiment(ctx context.Context, symbol string) ([]SentimentPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(p.dir, "sentiment", symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("sentiment for %s: %w", symbol, err)
	}
	defer file.Close()

	records, err := readCSV(file)
	if err != nil {
		return nil, fmt.Errorf("sentiment for %s: %w", symbol, err)
	}

	points := make([]SentimentPoint, 0, len(records))
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("sentiment for %s: row %d has %d fields, want 2", symbol, i+1, len(rec))
		}
		ts, err := parseTimestamp(rec[0])
		if err != nil {
			return nil, fmt.Errorf("sentiment for %s: row %d: %w", symbol, i+1, err)
		}
		score, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("sentiment for %s: row %d: %w", symbol, i+1, err)
		}
		points = append(points, SentimentPoint{Timestamp: ts, Score: score})
	}
	return points, nil
}

// Financials reads the financials file for a symbol; missing coverage
// returns (nil, nil)
func (p *CSVProvider) Financials(ctx context.Context, symbol string) (*models.Financials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(p.dir, "financial", symbol+".json")
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("financials for %s: %w", symbol, err)
	}
	var fin models.Financials
	if err := json.Unmarshal(payload, &fin); err != nil {
		return nil, fmt.Errorf("financials for %s: %w", symbol, err)
	}
	return &fin, nil
}

// readCSV reads all rows, skipping a header row when the first field is
// not a parseable timestamp
func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		if _, err := parseTimestamp(records[0][0]); err != nil {
			records = records[1:]
		}
	}
	return records, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	return ts.UTC(), nil
}
