package handlers

import (
	"log/slog"
	"net/http"

	"github.com/EldritchWeaver/MatchPoint/services"
)

type MatchHandler struct {
	matchService services.MatchService
	logger       *slog.Logger
}

func NewMatchHandler(matchService services.MatchService, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{matchService: matchService, logger: logger}
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.matchService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, match)
}

func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := paginationParams(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	matches, err := h.matchService.List(r.Context(), skip, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *MatchHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	matches, err := h.matchService.ListByTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *MatchHandler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		HomeScore    int `json:"resultado_local"`
		VisitorScore int `json:"resultado_visitante"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	match, err := h.matchService.UpdateResult(r.Context(), id, input.HomeScore, input.VisitorScore)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	deleted, err := h.matchService.Delete(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	deleteResponse(w, deleted)
}
