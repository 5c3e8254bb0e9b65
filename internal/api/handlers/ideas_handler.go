package handlers

import (
	"net/http"

	"github.com/hackmap/engine/internal/api/types"
	"github.com/hackmap/engine/internal/services"
)

type IdeasHandler struct {
	ideas services.IdeaService
}

func NewIdeasHandler(ideas services.IdeaService) *IdeasHandler {
	return &IdeasHandler{ideas: ideas}
}

// List includes is_endorsed for the caller when a token is supplied.
func (h *IdeasHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.ideas.ListProjectIdeasWithAggregates(r.Context(), optionalUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondList(w, r, list)
}

func (h *IdeasHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	idea, err := h.ideas.GetProjectIdea(r.Context(), id, optionalUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, idea)
}

func (h *IdeasHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateIdeaRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	idea, err := h.ideas.CreateProjectIdea(r.Context(), currentUser(r), &services.CreateProjectIdeaInput{
		TeamID:    req.TeamID,
		Title:     req.Title,
		Summary:   req.Summary,
		TechStack: req.TechStack,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, idea)
}

func (h *IdeasHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.ideas.ListComments(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondList(w, r, list)
}

func (h *IdeasHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.CommentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.ideas.AddComment(r.Context(), id, currentUser(r), req.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, c)
}

func (h *IdeasHandler) Endorse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.ideas.Endorse(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, e)
}

func (h *IdeasHandler) Unendorse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.ideas.Unendorse(r.Context(), currentUser(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
