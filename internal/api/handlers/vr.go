package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wonny/rebal/internal/advisor"
	"github.com/wonny/rebal/internal/calendar"
	"github.com/wonny/rebal/internal/vr"
	"github.com/wonny/rebal/pkg/logger"
)

// Grid and projection sizes are caller-controlled; cap them so a typo
// cannot allocate an absurd response.
const (
	maxProjectionSteps = 260 // 10 years of biweekly cycles
	maxTableLevels     = 500
)

// VRHandler handles engine API endpoints
// ⭐ SSOT: VR 엔진 API 핸들러는 이 구조체에서만
type VRHandler struct {
	svc    *advisor.Service
	logger *logger.Logger
}

// NewVRHandler creates a new engine handler
func NewVRHandler(svc *advisor.Service, log *logger.Logger) *VRHandler {
	return &VRHandler{svc: svc, logger: log}
}

// EvaluateRequest carries one ad-hoc valuation. When Price is zero the
// live price is fetched through the fallback cascade.
type EvaluateRequest struct {
	Ticker  string  `json:"ticker"`
	Price   float64 `json:"price"`
	Shares  int64   `json:"shares"`
	Pool    float64 `json:"pool"`
	VPrev   float64 `json:"v_prev"`
	D       float64 `json:"d"`
	Band    float64 `json:"band"`
	Contrib float64 `json:"contrib"`
}

// Evaluate computes a valuation and decision without touching the session
// or the logs.
// POST /api/vr/evaluate
func (h *VRHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	price := req.Price
	if price == 0 {
		quote, err := h.svc.FetchQuote(r.Context(), req.Ticker)
		if err != nil {
			h.logger.WithError(err).Error("Failed to fetch price")
			respondDomainError(w, err)
			return
		}
		price = quote.Price
	}

	in := vr.ValuationInput{
		Price:   price,
		Shares:  req.Shares,
		Pool:    req.Pool,
		VPrev:   req.VPrev,
		D:       req.D,
		Band:    req.Band,
		Contrib: req.Contrib,
	}

	res, err := vr.ComputeValues(in)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"input":    in,
		"result":   res,
		"decision": vr.DecideAction(res, in.Price),
	})
}

// Check runs a full review cycle on the persisted session: live price,
// evaluation, recommendation log append, session save.
// POST /api/vr/check
func (h *VRHandler) Check(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Check(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Review cycle failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ProjectRequest carries the projection parameters.
type ProjectRequest struct {
	VStart  float64 `json:"v_start"`
	R       float64 `json:"r"`
	Contrib float64 `json:"contrib"`
	Band    float64 `json:"band"`
	Steps   int     `json:"steps"`
}

// ProjectionRow is a ProjectionStep labelled with its expected review date.
type ProjectionRow struct {
	vr.ProjectionStep
	Date time.Time `json:"date"`
}

// Project extrapolates the target-value recurrence forward.
// POST /api/vr/project
func (h *VRHandler) Project(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Steps < 0 || req.Steps > maxProjectionSteps {
		respondError(w, http.StatusBadRequest, "steps out of range")
		return
	}

	steps := vr.ProjectPath(req.VStart, req.R, req.Contrib, req.Band, req.Steps)
	dates := calendar.ReviewDates(time.Now(), req.Steps)

	rows := make([]ProjectionRow, len(steps))
	for i, s := range steps {
		rows[i] = ProjectionRow{ProjectionStep: s, Date: dates[i]}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"steps": rows})
}

// TableRequest carries the scenario-table parameters.
type TableRequest struct {
	CurrentPrice float64 `json:"current_price"`
	Shares       int64   `json:"shares"`
	VNext        float64 `json:"v_next"`
	Low          float64 `json:"low"`
	High         float64 `json:"high"`
	PriceStep    float64 `json:"price_step"`
	NumLevels    int     `json:"num_levels"`
}

// Table builds the price-level scenario table.
// POST /api/vr/table
func (h *VRHandler) Table(w http.ResponseWriter, r *http.Request) {
	var req TableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.PriceStep <= 0 {
		respondError(w, http.StatusBadRequest, "price_step must be > 0")
		return
	}
	if req.NumLevels < 0 || req.NumLevels > maxTableLevels {
		respondError(w, http.StatusBadRequest, "num_levels out of range")
		return
	}

	rows := vr.GeneratePriceTable(req.CurrentPrice, req.Shares, req.VNext, req.Low, req.High, req.PriceStep, req.NumLevels)

	respondJSON(w, http.StatusOK, map[string]interface{}{"rows": rows})
}

// GetSession returns the persisted session.
// GET /api/session
func (h *VRHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Session()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load session")
		respondError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// SessionUpdateRequest carries the user-editable strategy parameters.
type SessionUpdateRequest struct {
	Ticker  string  `json:"ticker"`
	Shares  int64   `json:"shares"`
	Pool    float64 `json:"pool"`
	VPrev   float64 `json:"v_prev"`
	D       float64 `json:"d"`
	Band    float64 `json:"band"`
	Contrib float64 `json:"contrib"`
}

// UpdateSession replaces the session parameters. The evaluation fields
// (last quote/result/decision) are preserved.
// PUT /api/session
func (h *VRHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := h.svc.Session()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load session")
		respondError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	session.Ticker = req.Ticker
	session.Shares = req.Shares
	session.Pool = req.Pool
	session.VPrev = req.VPrev
	session.D = req.D
	session.Band = req.Band
	session.Contrib = req.Contrib

	// Reject parameter sets the engine could never evaluate. Price 1 is a
	// placeholder: only the non-price fields are being checked here.
	if err := session.Input(1).Validate(); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.svc.SaveSession(session); err != nil {
		h.logger.WithError(err).Error("Failed to save session")
		respondError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}
