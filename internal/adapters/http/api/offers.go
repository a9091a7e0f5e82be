// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	repository "github.com/okian/engageoffer/internal/adapters/repository"
	"github.com/okian/engageoffer/internal/domain/risk"
)

// OffersHandler serves generated offer letters.
type OffersHandler struct {
	deps Dependencies
}

// NewOffersHandler creates a new offers handler.
func NewOffersHandler(deps Dependencies) *OffersHandler {
	return &OffersHandler{deps: deps}
}

// HandleListOffers handles GET /offers requests.
func (h *OffersHandler) HandleListOffers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	batch, err := h.deps.Offers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// HandleGetOffer handles GET /offers/{patient_id} requests and returns the
// letter as plain text.
func (h *OffersHandler) HandleGetOffer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/offers/")
	id, err := strconv.Atoi(raw)
	if raw == "" || err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: patient id %q", ErrBadRequest, raw))
		return
	}

	o, err := h.deps.Offer(r.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	case errors.Is(err, risk.ErrUnknownCategory):
		writeError(w, http.StatusUnprocessableEntity, "unknown_category", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Discount-Percent", strconv.Itoa(o.DiscountPercent))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(o.Text))
}
