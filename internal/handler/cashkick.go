package handler

import (
	"encoding/json"
	"net/http"

	"github.com/finbridge/cashkick-service/internal/middleware"
	"github.com/finbridge/cashkick-service/internal/models"
)

// UserCashkicks handles fetching the authenticated user's cashkicks with
// their financed totals
func (h *Handler) UserCashkicks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	cashkicks, err := h.financing.UserCashkicks(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "Successfully fetched cashkicks", cashkicks)
}

// CreateCashkick handles creation of a financed cashkick for the
// authenticated user
func (h *Handler) CreateCashkick(w http.ResponseWriter, r *http.Request) {
	var input models.CashkickInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if input.Name == "" {
		h.writeJSON(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	if input.TotalReceived < 0 {
		h.writeJSON(w, http.StatusBadRequest, "totalReceived must be non-negative", nil)
		return
	}
	if input.Status == "" {
		input.Status = models.CashkickStatusPending
	}
	input.UserID = middleware.UserID(r.Context())

	cashkick, err := h.financing.CreateCashkick(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.cache.Flush(r.Context())
	h.writeJSON(w, http.StatusCreated, "Successfully added cashkick", cashkick)
}
