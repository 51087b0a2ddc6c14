package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/core"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/logger"
)

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Encode response: %v", err)
	}
}

// writeError maps err onto an HTTP status and a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	code, msg := statusFor(err)
	var ae *core.AnalysisError
	switch {
	case code >= 500:
		logger.Error("Request failed: %v", err)
	case errors.As(err, &ae):
		logger.Debug("Request rejected [%s/%s]: %v", ae.Category, ae.Code, err)
	}
	jsonError(w, msg, code)
}

func statusFor(err error) (int, string) {
	var ae *core.AnalysisError
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError, err.Error()
	}

	switch ae.Category {
	case core.ErrCategoryInput:
		return http.StatusBadRequest, ae.Message
	case core.ErrCategoryDocument:
		return http.StatusUnprocessableEntity, ae.Message
	case core.ErrCategoryFetch:
		// Upstream detail is part of the message ("Could not fetch XML: ...").
		return http.StatusBadGateway, ae.Error()
	case core.ErrCategoryStore:
		return http.StatusNotFound, ae.Message
	case core.ErrCategoryAuth:
		if errors.Is(ae, core.ErrForbidden) {
			return http.StatusForbidden, ae.Message
		}
		return http.StatusUnauthorized, ae.Message
	default:
		return http.StatusInternalServerError, ae.Error()
	}
}
