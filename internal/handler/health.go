package handler

import "net/http"

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, "ok", nil)
}

// BenchmarkRate returns the current benchmark financing rate from the
// external feed
func (h *Handler) BenchmarkRate(w http.ResponseWriter, r *http.Request) {
	if h.rates == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, "benchmark rate feed not configured", nil)
		return
	}
	rate, err := h.rates.GetBenchmarkRate()
	if err != nil {
		h.log.Errorf("Failed to fetch benchmark rate: %v", err)
		h.writeJSON(w, http.StatusBadGateway, "benchmark rate unavailable", nil)
		return
	}
	h.writeJSON(w, http.StatusOK, "Successfully fetched benchmark rate", map[string]float64{"rate": rate})
}
