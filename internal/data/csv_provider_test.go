package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

func writeDataset(t *testing.T, dir, sub, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, sub, name), []byte(content), 0o644))
}

func TestCSVProvider_Load(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "ohlcv", "AAPL.csv",
		"timestamp,open,high,low,close,volume\n"+
			"2024-01-02,100,102,99,101,50000\n"+
			"2024-01-03T00:00:00Z,101,104,100,103,60000\n")

	provider := NewCSVProvider(dir)
	series, err := provider.Load(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", series.Symbol())
	assert.Equal(t, 2, series.Len())
	assert.Equal(t, []float64{101, 103}, series.Closes())
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series.Bar(0).Timestamp)
}

func TestCSVProvider_LoadWithoutHeader(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "ohlcv", "AAPL.csv",
		"2024-01-02,100,102,99,101,50000\n")

	series, err := NewCSVProvider(dir).Load(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 1, series.Len())
}

func TestCSVProvider_MissingFile(t *testing.T) {
	provider := NewCSVProvider(t.TempDir())
	_, err := provider.Load(context.Background(), "GHOST")
	assert.ErrorIs(t, err, models.ErrDataUnavailable)
}

func TestCSVProvider_MalformedRows(t *testing.T) {
	dir := t.TempDir()
	provider := NewCSVProvider(dir)
	ctx := context.Background()

	writeDataset(t, dir, "ohlcv", "BADTS.csv", "not-a-date,100,102,99,101,50000\n")
	_, err := provider.Load(ctx, "BADTS")
	assert.ErrorIs(t, err, models.ErrDataUnavailable)

	writeDataset(t, dir, "ohlcv", "BADNUM.csv", "2024-01-02,100,abc,99,101,50000\n")
	_, err = provider.Load(ctx, "BADNUM")
	assert.ErrorIs(t, err, models.ErrDataUnavailable)

	writeDataset(t, dir, "ohlcv", "UNORDERED.csv",
		"2024-01-03,100,102,99,101,50000\n2024-01-02,100,102,99,101,50000\n")
	_, err = provider.Load(ctx, "UNORDERED")
	assert.ErrorIs(t, err, models.ErrDataUnavailable)
}

func TestCSVProvider_Sentiment(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "sentiment", "AAPL.csv",
		"timestamp,score\n2024-01-02,0.25\n2024-01-03,-0.15\n")

	provider := NewCSVProvider(dir)
	points, err := provider.Sentiment(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 0.25, points[0].Score)
	assert.Equal(t, -0.15, points[1].Score)

	// No coverage is not an error
	points, err = provider.Sentiment(context.Background(), "GHOST")
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestCSVProvider_Financials(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "financial", "AAPL.json",
		`{"target_mean_price": 250.5, "market_cap": 3000000000000, "company_name": "Apple Inc."}`)

	provider := NewCSVProvider(dir)
	fin, err := provider.Financials(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, fin)
	require.NotNil(t, fin.TargetMeanPrice)
	assert.Equal(t, 250.5, *fin.TargetMeanPrice)
	assert.Nil(t, fin.TotalRevenue)

	fin, err = provider.Financials(context.Background(), "GHOST")
	require.NoError(t, err)
	assert.Nil(t, fin)
}
