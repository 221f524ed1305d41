package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"quizhub/internal/domain"
)

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeError maps domain errors onto the response taxonomy: validation
// failures are 400 with field messages, missing records are 404, and
// everything else is a 500 with no internal detail leaked.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: verr.Message, Errors: verr.Fields})
	case errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrAttemptNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	default:
		log.Printf("request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

// decodeValid decodes a JSON body into v and runs schema validation,
// translating validator failures into field-level messages.
func (h *Handler) decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Validationf("invalid request body")
	}
	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = "failed '" + fe.Tag() + "' validation"
			}
			return &domain.ValidationError{Message: "validation failed", Fields: fields}
		}
		return domain.Validationf("validation failed")
	}
	return nil
}
