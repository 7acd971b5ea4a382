package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/EldritchWeaver/MatchPoint/repositories"
	"github.com/EldritchWeaver/MatchPoint/services"
)

type jsonResponse map[string]interface{}

// Error kinds exposed on the wire alongside the HTTP status.
const (
	codeNotFound     = "NOT_FOUND"
	codeUnique       = "UNIQUE_VIOLATION"
	codeForeignKey   = "FOREIGN_KEY_VIOLATION"
	codeCheck        = "CHECK_VIOLATION"
	codeBusinessRule = "BUSINESS_RULE_VIOLATION"
	codeInUse        = "IN_USE"
	codeValidation   = "VALIDATION_FAILED"
	codeUnauthorized = "UNAUTHORIZED"
	codeInternal     = "INTERNAL"
)

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func errorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, jsonResponse{
		"error": jsonResponse{"code": code, "message": message},
	})
}

func badRequestResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusBadRequest, codeValidation, err.Error())
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	errorResponse(w, http.StatusInternalServerError, codeInternal,
		"the server encountered a problem and could not process your request")
}

// mapServiceErrorToHTTP translates service and repository sentinels into a
// status code and wire error kind. Anything unrecognized is a 500.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrTeamNotFound),
		errors.Is(err, repositories.ErrMemberNotFound),
		errors.Is(err, repositories.ErrTournamentNotFound),
		errors.Is(err, repositories.ErrInscriptionNotFound),
		errors.Is(err, repositories.ErrPaymentNotFound),
		errors.Is(err, repositories.ErrMatchNotFound):
		errorResponse(w, http.StatusNotFound, codeNotFound, err.Error())

	case errors.Is(err, repositories.ErrUserEmailConflict),
		errors.Is(err, repositories.ErrTeamNameConflict),
		errors.Is(err, repositories.ErrMemberPairConflict),
		errors.Is(err, repositories.ErrInscriptionConflict),
		errors.Is(err, services.ErrNameTaken):
		errorResponse(w, http.StatusConflict, codeUnique, err.Error())

	case errors.Is(err, repositories.ErrTeamCaptainInvalid),
		errors.Is(err, repositories.ErrMemberRefInvalid),
		errors.Is(err, repositories.ErrTournamentOrganizerInvalid),
		errors.Is(err, repositories.ErrInscriptionRefInvalid),
		errors.Is(err, repositories.ErrPaymentRefInvalid),
		errors.Is(err, repositories.ErrMatchRefInvalid):
		errorResponse(w, http.StatusConflict, codeForeignKey, err.Error())

	case errors.Is(err, services.ErrCaptainAlreadyAssigned),
		errors.Is(err, services.ErrUserAlreadyOnTeam):
		errorResponse(w, http.StatusConflict, codeBusinessRule, err.Error())

	case errors.Is(err, repositories.ErrUserInUse),
		errors.Is(err, repositories.ErrTeamInUse):
		errorResponse(w, http.StatusConflict, codeInUse, err.Error())

	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPayStatus),
		errors.Is(err, services.ErrInvalidCapacity),
		errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, services.ErrNegativeScore),
		errors.Is(err, services.ErrSameTeamTwice),
		errors.Is(err, services.ErrPartialResult),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, repositories.ErrPaymentInvalid),
		errors.Is(err, repositories.ErrMatchInvalid):
		errorResponse(w, http.StatusUnprocessableEntity, codeCheck, err.Error())

	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrNicknameRequired),
		errors.Is(err, services.ErrPasswordRequired):
		errorResponse(w, http.StatusUnprocessableEntity, codeValidation, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		errorResponse(w, http.StatusUnauthorized, codeUnauthorized, err.Error())

	case errors.Is(err, services.ErrUnsupportedImage):
		errorResponse(w, http.StatusUnsupportedMediaType, codeValidation, err.Error())

	case errors.Is(err, services.ErrUploaderDisabled):
		errorResponse(w, http.StatusServiceUnavailable, codeValidation, err.Error())

	default:
		if cerr, ok := repositories.AsConstraintError(err); ok {
			switch cerr.Kind {
			case repositories.KindUnique:
				errorResponse(w, http.StatusConflict, codeUnique, cerr.Error())
			case repositories.KindForeignKey:
				errorResponse(w, http.StatusConflict, codeForeignKey, cerr.Error())
			case repositories.KindCheck:
				errorResponse(w, http.StatusUnprocessableEntity, codeCheck, cerr.Error())
			}
			return
		}
		serverErrorResponse(w, r, logger, err)
	}
}

func idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id parameter")
	}
	return id, nil
}

// paginationParams reads skip/limit query values, defaulting to 0/100.
func paginationParams(r *http.Request) (skip, limit int, err error) {
	skip, limit = 0, 100
	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return 0, 0, fmt.Errorf("invalid skip parameter")
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return 0, 0, fmt.Errorf("invalid limit parameter")
		}
	}
	return skip, limit, nil
}

// deleteResponse maps the idempotent delete result: 204 when a row was
// removed, 404 otherwise.
func deleteResponse(w http.ResponseWriter, deleted bool) {
	if !deleted {
		errorResponse(w, http.StatusNotFound, codeNotFound, "the requested resource could not be found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
