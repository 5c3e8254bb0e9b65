package handlers

import (
	"net/http"

	"github.com/hackmap/engine/internal/api/types"
	"github.com/hackmap/engine/internal/services"
)

type RegistrationsHandler struct {
	registrations services.RegistrationService
}

func NewRegistrationsHandler(registrations services.RegistrationService) *RegistrationsHandler {
	return &RegistrationsHandler{registrations: registrations}
}

func (h *RegistrationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.RegistrationRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := selfOrCaller(r, req.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	reg, err := h.registrations.RegisterUserForHackathon(r.Context(), userID, req.HackathonID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, reg)
}

// Status returns the registration or null when the user is not registered.
func (h *RegistrationsHandler) Status(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := requireQueryID(r, "hackathon_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	requested, err := queryID(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var uid uint
	if requested != nil {
		uid = *requested
	}
	userID, err := selfOrCaller(r, uid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	reg, err := h.registrations.GetRegistrationStatus(r.Context(), userID, hackathonID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]any{
		"registered":   reg != nil,
		"registration": reg,
	})
}

func (h *RegistrationsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.registrations.ListRegistrationsForUser(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondList(w, r, list)
}
