package handlers

import (
	"net/http"

	"github.com/hackmap/engine/internal/api/types"
	"github.com/hackmap/engine/internal/services"
)

type TeamsHandler struct {
	teams services.TeamService
}

func NewTeamsHandler(teams services.TeamService) *TeamsHandler {
	return &TeamsHandler{teams: teams}
}

// List returns every team, or only those of ?hackathon_id when given.
func (h *TeamsHandler) List(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := queryID(r, "hackathon_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.teams.ListTeamsForHackathon(r.Context(), hackathonID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondList(w, r, list)
}

func (h *TeamsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	team, err := h.teams.GetTeam(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, team)
}

func (h *TeamsHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.teams.ListMembers(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondList(w, r, list)
}

func (h *TeamsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateTeamRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	team, err := h.teams.CreateTeam(r.Context(), currentUser(r), &services.CreateTeamInput{
		HackathonID:    req.HackathonID,
		Name:           req.Name,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		MaxMembers:     req.MaxMembers,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, team)
}

func (h *TeamsHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req types.JoinTeamRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	member, err := h.teams.JoinTeam(r.Context(), currentUser(r), req.TeamID, req.InviteCode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, member)
}

func (h *TeamsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.teams.ListTeamsForUser(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondList(w, r, list)
}

func (h *TeamsHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	list, err := h.teams.RecommendTeamsForUser(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondList(w, r, list)
}

// UserTeam returns the caller's team in a hackathon, or null.
func (h *TeamsHandler) UserTeam(w http.ResponseWriter, r *http.Request) {
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

	team, err := h.teams.GetUserTeamForHackathon(r.Context(), userID, hackathonID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, team)
}
