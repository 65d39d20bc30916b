package handler

import (
	"encoding/json"
	"net/http"

	"github.com/finbridge/cashkick-service/internal/middleware"
	"github.com/finbridge/cashkick-service/internal/models"
)

// UserContracts handles fetching the contracts backing the authenticated
// user's cashkicks
func (h *Handler) UserContracts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	contracts, err := h.contracts.ContractsForUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "Successfully fetched contracts", contracts)
}

// AllContracts handles browsing the full contract catalog
func (h *Handler) AllContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.contracts.ContractsForUser(r.Context(), "")
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "Successfully fetched contracts", contracts)
}

// CreateContracts handles bulk contract creation
func (h *Handler) CreateContracts(w http.ResponseWriter, r *http.Request) {
	var inputs []models.ContractInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		h.writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if len(inputs) == 0 {
		h.writeJSON(w, http.StatusBadRequest, "at least one contract is required", nil)
		return
	}

	if err := h.contracts.CreateContracts(r.Context(), inputs); err != nil {
		h.writeError(w, err)
		return
	}
	h.cache.Flush(r.Context())
	h.writeJSON(w, http.StatusCreated, "Successfully added contracts", nil)
}
