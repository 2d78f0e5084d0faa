// Package handler contains the HTTP layer: one handler struct per
// aggregate, each parsing requests, calling its service, and writing JSON
// responses. Handlers know HTTP; they know nothing about SQL or files.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/cliphub/internal/service"
)

// AccountHandler serves /login and /register.
type AccountHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// credentialsRequest is the body of both POST /login and POST /register.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin checks credentials and returns the user's id.
//
// HTTP: POST /login
// Success: 200 {"id": "..."} — failure is always 404 "not a valid login".
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, StatusResponse{Status: "invalid JSON body"})
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, IDResponse{ID: user.ID})
}

// HandleRegister creates an account and returns its id.
//
// HTTP: POST /register
// Success: 200 {"id": "..."} — failures are 400 with the exact
// "unsuccessful registration: ..." message for the first failing check.
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, StatusResponse{Status: "invalid JSON body"})
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, IDResponse{ID: user.ID})
}
