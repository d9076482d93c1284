package respond

import (
	"encoding/json"
	"net/http"
)

// JSON writes an arbitrary payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encode errors past this point cannot change the status line.
	_ = json.NewEncoder(w).Encode(payload)
}

// Message writes the flat {"message": ...} shape used by informational
// responses.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// Error writes a failure response. Error bodies use the same
// {"message": ...} shape as informational ones.
func Error(w http.ResponseWriter, status int, message string) {
	Message(w, status, message)
}
