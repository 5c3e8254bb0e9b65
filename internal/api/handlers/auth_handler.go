package handlers

import (
	"net/http"

	"github.com/hackmap/engine/internal/api/types"
	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/services"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

type AuthHandler struct {
	users  services.UserService
	tokens TokenIssuer
	ttl    int64
}

func NewAuthHandler(users services.UserService, tokens TokenIssuer, ttlSeconds int64) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, ttl: ttlSeconds}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.SignUp(r.Context(), &services.SignUpInput{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		Bio:           req.Bio,
		Skills:        req.Skills,
		GithubLink:    req.GithubLink,
		PortfolioLink: req.PortfolioLink,
		AvatarURL:     req.AvatarURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, u)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetUser(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, u)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req types.ChangePasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.users.ChangePassword(r.Context(), currentUser(r), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, u *models.User) {
	tok, err := h.tokens.Issue(u.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, status, types.AuthData{
		AccessToken: tok,
		TokenType:   "Bearer",
		ExpiresIn:   h.ttl,
		User:        u,
	})
}
