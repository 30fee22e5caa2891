package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/quickscope/internal/audit"
	"github.com/wonny/quickscope/pkg/logger"
)

// AuditHandler handles stored-analysis API endpoints
type AuditHandler struct {
	repo   *audit.Repository
	logger *logger.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(repo *audit.Repository, log *logger.Logger) *AuditHandler {
	return &AuditHandler{
		repo:   repo,
		logger: log,
	}
}

// GetLatest returns the most recent stored analysis for a ticker
// GET /api/analyze/{ticker}
func (h *AuditHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	rec, err := h.repo.LatestForTicker(ctx, ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get latest analysis")
		respondError(w, http.StatusNotFound, "No analysis recorded for ticker")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    rec,
	})
}

// GetHistory returns stored analyses for a ticker over a date range
// GET /api/analyze/{ticker}/history?days=90
func (h *AuditHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	days := 90
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 {
			days = d
		}
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	records, err := h.repo.History(ctx, ticker, from, to)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"ticker": ticker,
			"days":   days,
		}).Error("Failed to get analysis history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve analysis history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    records,
	})
}
