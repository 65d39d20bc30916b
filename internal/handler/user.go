package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/finbridge/cashkick-service/internal/models"
)

// Signup handles user registration
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var input models.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		h.writeJSON(w, http.StatusBadRequest, "name, email and password are required", nil)
		return
	}

	user, err := h.users.Signup(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, "Successfully added user", user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	token, err := h.users.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "login successful", map[string]string{"token": token})
}

// GetUserByEmail handles user lookup via the email query parameter
func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeJSON(w, http.StatusBadRequest, "email query parameter is required", nil)
		return
	}

	user, err := h.users.UserByEmail(r.Context(), email)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "Successfully fetched users", user)
}

// ListUsers handles listing all users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Users(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, "Successfully fetched users", users)
}

// UpdateUser handles password and balance updates
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var input models.UserUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := h.users.UpdateUser(r.Context(), id, input); err != nil {
		h.writeError(w, err)
		return
	}
	h.cache.Flush(r.Context())
	h.writeJSON(w, http.StatusOK, "Successfully updated user", nil)
}
