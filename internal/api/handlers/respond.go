package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/rebal/internal/market"
	"github.com/wonny/rebal/internal/vr"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps engine and collaborator failures to distinct
// statuses: the remediation for a bad input (fix the form) is different
// from a dead price source (retry later).
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vr.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, market.ErrAllSourcesFailed):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
