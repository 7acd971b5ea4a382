package handlers

import (
	"log/slog"
	"net/http"

	"github.com/EldritchWeaver/MatchPoint/services"
)

type TeamHandler struct {
	teamService services.TeamService
	logger      *slog.Logger
}

func NewTeamHandler(teamService services.TeamService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{teamService: teamService, logger: logger}
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	team, err := h.teamService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	team, err := h.teamService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := paginationParams(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	teams, err := h.teamService.List(r.Context(), skip, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	members, err := h.teamService.ListMembers(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.TeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	team, err := h.teamService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// UploadCrest stores the raw request body as the team crest image.
func (h *TeamHandler) UploadCrest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	contentType := r.Header.Get("Content-Type")
	body := http.MaxBytesReader(w, r.Body, 5<<20)
	defer body.Close()

	team, err := h.teamService.UploadCrest(r.Context(), id, contentType, body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	deleted, err := h.teamService.Delete(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	deleteResponse(w, deleted)
}
