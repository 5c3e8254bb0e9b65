package handlers

import (
	"net/http"

	"github.com/hackmap/engine/internal/api/types"
	"github.com/hackmap/engine/internal/services"
)

type UsersHandler struct {
	users services.UserService
}

func NewUsersHandler(users services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// UpdateProfile applies a partial update to the caller's own profile.
func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if id != currentUser(r) {
		writeError(w, r, errForbiddenOther)
		return
	}

	var req types.UpdateProfileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), id, &services.ProfilePatch{
		Username:      req.Username,
		Email:         req.Email,
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
	respond(w, r, http.StatusOK, u)
}
