package api

import (
	"encoding/json"
	"net/http"
)

// OKResponse writes data as a JSON body with status 200.
func OKResponse(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

// NoContentResponse answers 204 with an empty body.
func NoContentResponse(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
