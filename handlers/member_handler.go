package handlers

import (
	"log/slog"
	"net/http"

	"github.com/EldritchWeaver/MatchPoint/services"
)

type MemberHandler struct {
	memberService services.MemberService
	logger        *slog.Logger
}

func NewMemberHandler(memberService services.MemberService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{memberService: memberService, logger: logger}
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.MemberInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	member, err := h.memberService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	member, err := h.memberService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := paginationParams(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	members, err := h.memberService.List(r.Context(), skip, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	deleted, err := h.memberService.Delete(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	deleteResponse(w, deleted)
}
