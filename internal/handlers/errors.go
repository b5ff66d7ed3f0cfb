package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is an error with an HTTP status and a machine-readable code
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func badRequest(code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message}
}

func mapError(err error) (status int, code, message string) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Code, apiErr.Message
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"code":  code,
		"error": message,
	})
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return badRequest("INVALID_JSON", "Request body is required")
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return badRequest("INVALID_JSON", "Invalid JSON body")
	}
	return nil
}
