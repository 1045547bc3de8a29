// internal/handler/user_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/asadkovich/task-manager/internal/service"
)

type UserHandler struct {
	auth *service.AuthService
}

func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{
		auth: auth,
	}
}

type createUserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Create registers a new user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid_request", "invalid json body", http.StatusBadRequest)
		return
	}

	if req.Login == "" || req.Password == "" {
		respondError(w, "invalid_request", "login and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}

	respondJSON(w, map[string]string{"id": user.ID.String(), "login": user.Login}, http.StatusOK)
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates form credentials and issues a bearer token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, "invalid_request", "invalid form body", http.StatusBadRequest)
		return
	}

	login := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.auth.Authenticate(r.Context(), login, password)
	if err != nil {
		writeErr(w, err)
		return
	}

	token, err := h.auth.IssueToken(user.Login)
	if err != nil {
		writeErr(w, err)
		return
	}

	respondJSON(w, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, http.StatusOK)
}
