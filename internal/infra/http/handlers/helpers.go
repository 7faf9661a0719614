package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rcardo11/leadpilot/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeUseCaseError maps the error taxonomy onto HTTP: domain errors are the
// caller's problem (4xx), technical errors are ours (5xx).
func writeUseCaseError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		status := http.StatusUnprocessableEntity
		switch de.Code {
		case "LEAD_NOT_FOUND":
			status = http.StatusNotFound
		case "UNKNOWN_PACKAGE":
			status = http.StatusBadRequest
		case "PAYMENT_LINK_FAILED":
			// The processor refused, not the caller.
			status = http.StatusBadGateway
		case "TEMPLATE_NOT_FOUND":
			// A missing template is a configuration bug, not caller input.
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorResponse{Error: de.Message, Code: de.Code})
		return
	}
	if te, ok := err.(*usecase.TechnicalError); ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: te.Message, Code: te.Code})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
