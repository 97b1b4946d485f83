// Package httpserver contains HTTP handlers and middleware.
//
// It exposes the REST surface of the screener and keeps a clear separation
// between HTTP concerns and the usecase layer. Domain failures map to a JSON
// error envelope; diagnostic payloads ride in the details field.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	code := http.StatusInternalServerError
	codeStr := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		code = http.StatusBadRequest
		codeStr = "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		codeStr = "NOT_FOUND"
	case errors.Is(err, domain.ErrExtractionFailed):
		code = http.StatusUnprocessableEntity
		codeStr = "EXTRACTION_FAILED"
	case errors.Is(err, domain.ErrNoApplicants):
		code = http.StatusUnprocessableEntity
		codeStr = "NO_APPLICANTS"
	case errors.Is(err, domain.ErrOracleNotConfigured):
		code = http.StatusServiceUnavailable
		codeStr = "ORACLE_NOT_CONFIGURED"
	case errors.Is(err, domain.ErrOracleUnavailable):
		code = http.StatusServiceUnavailable
		codeStr = "ORACLE_UNAVAILABLE"
	case errors.Is(err, domain.ErrOracleBlocked):
		code = http.StatusBadGateway
		codeStr = "ORACLE_BLOCKED"
	case errors.Is(err, domain.ErrOracleParseFailure):
		code = http.StatusBadGateway
		codeStr = "ORACLE_PARSE_FAILURE"
	case errors.Is(err, domain.ErrDataConsistency):
		code = http.StatusBadGateway
		codeStr = "DATA_CONSISTENCY"
	}
	writeJSON(w, code, errorEnvelope{Error: apiError{Code: codeStr, Message: err.Error(), Details: details}})
}
