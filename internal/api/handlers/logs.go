package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/rebal/internal/advisor"
	"github.com/wonny/rebal/internal/vr"
	"github.com/wonny/rebal/pkg/logger"
)

// LogsHandler handles ledger and reminder API endpoints
// ⭐ SSOT: 로그/리마인더 API 핸들러는 이 구조체에서만
type LogsHandler struct {
	svc    *advisor.Service
	logger *logger.Logger
}

// NewLogsHandler creates a new logs handler
func NewLogsHandler(svc *advisor.Service, log *logger.Logger) *LogsHandler {
	return &LogsHandler{svc: svc, logger: log}
}

// GetRecommendations returns the full recommendation log.
// GET /api/logs/recommendations
func (h *LogsHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.Recommendations(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to read recommendation log")
		respondError(w, http.StatusInternalServerError, "Failed to read recommendation log")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(recs),
		"rows":  recs,
	})
}

// GetTrades returns the full trade log.
// GET /api/logs/trades
func (h *LogsHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.svc.Trades(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to read trade log")
		respondError(w, http.StatusInternalServerError, "Failed to read trade log")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(trades),
		"rows":  trades,
	})
}

// TradeRequest records one manually confirmed execution.
type TradeRequest struct {
	Side      string `json:"side"`       // BUY | SELL
	Qty       int64  `json:"qty"`
	FillPrice string `json:"fill_price"` // decimal string, 입력값 그대로 보존
	Note      string `json:"note"`
}

// RecordTrade appends to the trade log.
// POST /api/logs/trades
func (h *LogsHandler) RecordTrade(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fillPrice, err := decimal.NewFromString(req.FillPrice)
	if err != nil {
		respondError(w, http.StatusBadRequest, "fill_price must be a decimal number")
		return
	}

	trade, err := h.svc.RecordTrade(r.Context(), vr.Action(req.Side), req.Qty, fillPrice, req.Note)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, trade)
}

// GetReminder downloads the next biweekly review as an ICS file.
// GET /api/reminder.ics
func (h *LogsHandler) GetReminder(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Reminder(time.Now())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build reminder")
		respondError(w, http.StatusInternalServerError, "Failed to build reminder")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="vr_review.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
