package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohamedkhairy/stock-screener/internal/data"
	"github.com/mohamedkhairy/stock-screener/internal/models"
	"github.com/mohamedkhairy/stock-screener/internal/ranking"
	"github.com/mohamedkhairy/stock-screener/internal/scoring"
	"github.com/mohamedkhairy/stock-screener/pkg/indicator"
	"github.com/mohamedkhairy/stock-screener/pkg/logger"
)

// ScreenerHandler serves the scan/rank surface: it loads assets through
// the data collaborators, runs the scoring pipeline and hands ranked
// results to the caller.
type ScreenerHandler struct {
	provider   data.Provider
	sentiment  data.SentimentProvider
	financials data.FinancialsProvider
	pipeline   *scoring.Pipeline
	registry   *indicator.Registry
}

// NewScreenerHandler creates a screener handler. Sentiment and
// financials providers are optional.
func NewScreenerHandler(
	provider data.Provider,
	sentiment data.SentimentProvider,
	financials data.FinancialsProvider,
	pipeline *scoring.Pipeline,
	registry *indicator.Registry,
) *ScreenerHandler {
	return &ScreenerHandler{
		provider:   provider,
		sentiment:  sentiment,
		financials: financials,
		pipeline:   pipeline,
		registry:   registry,
	}
}

// ScanRequest is the POST /api/v1/scan body
type ScanRequest struct {
	// Symbols are scored as stocks (sentiment and financials attached)
	Symbols []string `json:"symbols"`
	// Indices are scored without stock-only collaborators
	Indices []string `json:"indices"`
	// Indicators optionally restricts the run to a subset by name; empty
	// means every enabled indicator
	Indicators []string `json:"indicators,omitempty"`
	// Agreement optionally keeps only assets with exactly this many
	// indicators agreeing
	Agreement *int `json:"agreement,omitempty"`
}

// ScoredAsset is one ranked row of a scan response
type ScoredAsset struct {
	Symbol        string             `json:"symbol"`
	Kind          models.AssetKind   `json:"kind"`
	GlobalScore   float64            `json:"global_score"`
	DetailedScore map[string]int     `json:"detailed_score"`
	LastClose     float64            `json:"last_close"`
	Financials    *models.Financials `json:"financials,omitempty"`
}

// ScanResponse is the POST /api/v1/scan payload
type ScanResponse struct {
	RunID     string            `json:"run_id"`
	ElapsedMs int64             `json:"elapsed_ms"`
	Scored    []ScoredAsset     `json:"scored"`
	Failures  []scoring.Failure `json:"failures"`
	Count     int               `json:"count"`
}

// Scan handles POST /api/v1/scan
func (h *ScreenerHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Symbols)+len(req.Indices) == 0 {
		respondWithError(w, http.StatusBadRequest, "At least one symbol or index is required")
		return
	}

	indicators := h.registry.Ordered()
	if len(req.Indicators) > 0 {
		subset, err := h.registry.Subset(req.Indicators)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		indicators = subset
	}

	assets, loadFailures := h.loadAssets(r.Context(), req)

	result, err := h.pipeline.ScoreAll(r.Context(), assets, indicators)
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "Scan cancelled")
		return
	}
	result.Failures = append(result.Failures, loadFailures...)

	scored := result.Scored
	if req.Agreement != nil {
		scored = ranking.FilterByAgreement(scored, *req.Agreement)
	}
	ranking.SortByPressure(scored)

	rows := make([]ScoredAsset, 0, len(scored))
	for _, a := range scored {
		rows = append(rows, ScoredAsset{
			Symbol:        a.Symbol,
			Kind:          a.Kind,
			GlobalScore:   a.GlobalScore,
			DetailedScore: a.DetailedScore,
			LastClose:     a.Series.LastBar().Close,
			Financials:    a.Financials,
		})
	}

	respondWithJSON(w, http.StatusOK, ScanResponse{
		RunID:     result.RunID,
		ElapsedMs: result.Elapsed.Milliseconds(),
		Scored:    rows,
		Failures:  result.Failures,
		Count:     len(rows),
	})
}

// loadAssets loads every requested instrument, collecting per-symbol
// load failures instead of aborting the scan
func (h *ScreenerHandler) loadAssets(ctx context.Context, req ScanRequest) ([]*scoring.Asset, []scoring.Failure) {
	var assets []*scoring.Asset
	var failures []scoring.Failure

	for _, symbol := range req.Indices {
		asset, err := h.loadOne(ctx, symbol, models.KindIndex)
		if err != nil {
			failures = append(failures, scoring.Failure{Symbol: symbol, Err: err, Reason: err.Error()})
			continue
		}
		assets = append(assets, asset)
	}
	for _, symbol := range req.Symbols {
		asset, err := h.loadOne(ctx, symbol, models.KindStock)
		if err != nil {
			failures = append(failures, scoring.Failure{Symbol: symbol, Err: err, Reason: err.Error()})
			continue
		}
		assets = append(assets, asset)
	}
	return assets, failures
}

func (h *ScreenerHandler) loadOne(ctx context.Context, symbol string, kind models.AssetKind) (*scoring.Asset, error) {
	series, err := h.provider.Load(ctx, symbol)
	if err != nil {
		return nil, err
	}
	asset := scoring.NewAsset(symbol, kind, series)

	if kind == models.KindIndex {
		return asset, nil
	}
	if h.sentiment != nil {
		points, err := h.sentiment.Sentiment(ctx, symbol)
		if err != nil {
			logger.Warn("sentiment unavailable",
				logger.String("symbol", symbol),
				logger.ErrorField(err),
			)
		} else if err := data.MergeSentiment(series, points); err != nil {
			return nil, err
		}
	}
	if h.financials != nil {
		fin, err := h.financials.Financials(ctx, symbol)
		if err != nil {
			logger.Warn("financials unavailable",
				logger.String("symbol", symbol),
				logger.ErrorField(err),
			)
		} else {
			asset.Financials = fin
		}
	}
	return asset, nil
}

// IndicatorInfo describes one registered indicator
type IndicatorInfo struct {
	Name        string `json:"name"`
	FlagColumn  string `json:"flag_column,omitempty"`
	MinLookback int    `json:"min_lookback"`
}

// ListIndicators handles GET /api/v1/indicators
func (h *ScreenerHandler) ListIndicators(w http.ResponseWriter, r *http.Request) {
	inds := h.registry.Ordered()
	infos := make([]IndicatorInfo, 0, len(inds))
	for _, ind := range inds {
		infos = append(infos, IndicatorInfo{
			Name:        ind.Name(),
			FlagColumn:  ind.FlagColumn(),
			MinLookback: ind.MinLookback(),
		})
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"indicators": infos,
		"count":      len(infos),
	})
}

// Health handles GET /health
func (h *ScreenerHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": h.provider.Name(),
	})
}

// NewRouter builds the screener's HTTP router
func NewRouter(h *ScreenerHandler) *mux.Router {
	router := mux.NewRouter()
	chain := ChainMiddleware(RecoveryMiddleware(), LoggingMiddleware())
	router.Use(mux.MiddlewareFunc(chain))

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/scan", h.Scan).Methods(http.MethodPost)
	v1.HandleFunc("/indicators", h.ListIndicators).Methods(http.MethodGet)

	return router
}
