package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/finbridge/cashkick-service/internal/cache"
	"github.com/finbridge/cashkick-service/internal/service"
)

// RateSource supplies the current benchmark financing rate
type RateSource interface {
	GetBenchmarkRate() (float64, error)
}

// Handler exposes the service layer over HTTP
type Handler struct {
	users     *service.UserService
	financing *service.FinancingService
	contracts *service.ContractService
	cache     *cache.Cache
	rates     RateSource
	log       *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(users *service.UserService, financing *service.FinancingService,
	contracts *service.ContractService, c *cache.Cache, rates RateSource, log *logrus.Logger) *Handler {
	return &Handler{
		users:     users,
		financing: financing,
		contracts: contracts,
		cache:     c,
		rates:     rates,
		log:       log,
	}
}

// envelope is the standard API response wrapper
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Code: status, Message: message, Data: data}); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSON(w, statusFor(err), err.Error(), nil)
}

// statusFor maps classified service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
