package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/quickscope/internal/analyzer"
	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/pkg/logger"
)

// AnalyzeHandler handles analysis API endpoints
type AnalyzeHandler struct {
	service *analyzer.Service
	logger  *logger.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(service *analyzer.Service, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		service: service,
		logger:  log,
	}
}

// AnalyzeRequest represents an analysis request
type AnalyzeRequest struct {
	Tickers       []string `json:"tickers"`
	RiskProfile   string   `json:"risk_profile"`
	StrategyType  string   `json:"strategy_type"`
	PortfolioSize float64  `json:"portfolio_size"`
}

// TickerResult pairs one ticker with its analysis or failure message
type TickerResult struct {
	Ticker   string             `json:"ticker"`
	Analysis *analyzer.Analysis `json:"analysis,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Analyze runs the full pipeline for the requested tickers
// POST /api/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Tickers) == 0 {
		respondError(w, http.StatusBadRequest, "at least one ticker is required")
		return
	}

	profile, err := contracts.ParseRiskProfile(req.RiskProfile)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	strategy, err := contracts.ParseStrategyType(req.StrategyType)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.PortfolioSize <= 0 {
		respondError(w, http.StatusBadRequest, "portfolio_size must be positive")
		return
	}

	sel := analyzer.Selection{
		Profile:       profile,
		Strategy:      strategy,
		PortfolioSize: req.PortfolioSize,
	}

	results := h.service.AnalyzeBatch(ctx, req.Tickers, sel)

	out := make([]TickerResult, len(results))
	for i, res := range results {
		out[i] = TickerResult{Ticker: res.Ticker, Analysis: res.Analysis}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
			h.logger.WithError(res.Err).WithField("ticker", res.Ticker).Warn("Analysis failed")
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    out,
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
