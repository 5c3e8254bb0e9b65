package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hackmap/engine/internal/api/types"
	"github.com/hackmap/engine/internal/services"
	appErr "github.com/hackmap/engine/pkg/errors"
)

type HackathonsHandler struct {
	hackathons services.HackathonService
}

func NewHackathonsHandler(hackathons services.HackathonService) *HackathonsHandler {
	return &HackathonsHandler{hackathons: hackathons}
}

// List supports featured, query, category, date, tags (comma separated) and limit.
func (h *HackathonsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := parseHackathonFilters(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.hackathons.ListHackathons(r.Context(), filters)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondList(w, r, list)
}

func (h *HackathonsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	hk, err := h.hackathons.GetHackathon(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, hk)
}

func (h *HackathonsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateHackathonRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	hk, err := h.hackathons.CreateHackathon(r.Context(), &services.CreateHackathonInput{
		Title:                req.Title,
		Description:          req.Description,
		Theme:                req.Theme,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RegistrationDeadline: req.RegistrationDeadline,
		Prizes:               req.Prizes,
		Tags:                 req.Tags,
		ImageURL:             req.ImageURL,
		Status:               req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, hk)
}

func parseHackathonFilters(r *http.Request) (*services.HackathonFilters, error) {
	q := r.URL.Query()
	f := &services.HackathonFilters{
		Query:    q.Get("query"),
		Category: q.Get("category"),
		Date:     q.Get("date"),
	}
	if raw := q.Get("featured"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, appErr.New(appErr.CodeInvalid, "invalid featured")
		}
		f.Featured = b
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, appErr.New(appErr.CodeInvalid, "invalid limit")
		}
		f.Limit = n
	}
	switch f.Date {
	case "", services.DateThisMonth, services.DateNextMonth, services.DateUpcoming, services.DateOpenRegistration:
	default:
		return nil, appErr.New(appErr.CodeInvalid, "invalid date filter").WithMeta("date", f.Date)
	}
	for _, tag := range strings.Split(q.Get("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			f.Tags = append(f.Tags, tag)
		}
	}
	return f, nil
}
