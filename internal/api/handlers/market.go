package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/rebal/internal/advisor"
	"github.com/wonny/rebal/pkg/logger"
)

// MarketHandler handles price API endpoints
// ⭐ SSOT: 시세 API 핸들러는 이 구조체에서만
type MarketHandler struct {
	svc      *advisor.Service
	logger   *logger.Logger
	upgrader websocket.Upgrader
	interval time.Duration
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(svc *advisor.Service, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		svc:    svc,
		logger: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 단일 사용자 로컬 도구: 오리진 검사 불필요
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		interval: 15 * time.Second,
	}
}

// GetPrice fetches the current price through the fallback cascade.
// GET /api/price?ticker=TQQQ
func (h *MarketHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		session, err := h.svc.Session()
		if err != nil {
			h.logger.WithError(err).Error("Failed to load session")
			respondError(w, http.StatusInternalServerError, "Failed to load session")
			return
		}
		ticker = session.Ticker
	}

	quote, err := h.svc.FetchQuote(r.Context(), ticker)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch price")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// StreamPrice upgrades to a websocket and pushes fresh quotes until the
// client disconnects. The dashboard uses this to keep its price field live
// without polling.
// GET /api/price/stream?ticker=TQQQ
func (h *MarketHandler) StreamPrice(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		session, err := h.svc.Session()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load session")
			return
		}
		ticker = session.Ticker
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.WithField("ticker", ticker).Info("Price stream opened")

	// Drain client frames so pings/close are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	t := time.NewTicker(h.interval)
	defer t.Stop()

	ctx := r.Context()
	for {
		quote, err := h.svc.FetchQuote(ctx, ticker)
		if err != nil {
			// 스트림은 유지하고 다음 틱에 재시도
			h.logger.WithError(err).Warn("Stream price fetch failed")
		} else if err := conn.WriteJSON(quote); err != nil {
			h.logger.WithError(err).Debug("Price stream closed by client")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
