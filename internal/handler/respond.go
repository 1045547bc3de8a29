// internal/handler/respond.go
package handler

import (
	"encoding/json"
	"net/http"
)

func respondJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, category, detail string, status int) {
	respondJSON(w, map[string]string{
		"error":  category,
		"detail": detail,
	}, status)
}
