// Package respond centralizes JSON response writing for handlers.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// JSON writes a success response with the given payload.
func JSON(w http.ResponseWriter, status int, payload any) {
	write(w, status, payload)
}

// Error writes an error response with the shared {"error": ...} shape.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]string{"error": message})
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}
