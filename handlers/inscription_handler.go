package handlers

import (
	"log/slog"
	"net/http"

	"github.com/EldritchWeaver/MatchPoint/services"
)

type InscriptionHandler struct {
	inscriptionService services.InscriptionService
	logger             *slog.Logger
}

func NewInscriptionHandler(inscriptionService services.InscriptionService, logger *slog.Logger) *InscriptionHandler {
	return &InscriptionHandler{inscriptionService: inscriptionService, logger: logger}
}

func (h *InscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.InscriptionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	inscription, err := h.inscriptionService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, inscription)
}

func (h *InscriptionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	inscription, err := h.inscriptionService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, inscription)
}

func (h *InscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := paginationParams(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	inscriptions, err := h.inscriptionService.List(r.Context(), skip, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, inscriptions)
}

func (h *InscriptionHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	inscriptions, err := h.inscriptionService.ListByTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, inscriptions)
}

func (h *InscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	deleted, err := h.inscriptionService.Delete(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	deleteResponse(w, deleted)
}
