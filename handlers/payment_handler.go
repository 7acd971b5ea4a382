package handlers

import (
	"log/slog"
	"net/http"

	"github.com/EldritchWeaver/MatchPoint/models"
	"github.com/EldritchWeaver/MatchPoint/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
	logger         *slog.Logger
}

func NewPaymentHandler(paymentService services.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, logger: logger}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.PaymentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	payment, err := h.paymentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	payment, err := h.paymentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := paginationParams(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	payments, err := h.paymentService.List(r.Context(), skip, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	payments, err := h.paymentService.ListByTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input struct {
		Status models.PaymentStatus `json:"estado"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	payment, err := h.paymentService.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	deleted, err := h.paymentService.Delete(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	deleteResponse(w, deleted)
}
