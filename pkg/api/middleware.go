package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// requireAPIKey rejects requests whose X-API-Key header does not match key.
// Every attempt, including a missing header, is counted by m.
func requireAPIKey(key string, m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if reason := checkAPIKey(r.Header.Get("X-API-Key"), key); reason != "" {
				m.RecordAuthRequest(false)
				sendError(w, reason, http.StatusUnauthorized)
				return
			}
			m.RecordAuthRequest(true)
			next.ServeHTTP(w, r)
		})
	}
}

// checkAPIKey returns why got is not accepted, or "" when it matches want.
func checkAPIKey(got, want string) string {
	switch {
	case got == "":
		return "Missing X-API-Key header"
	case subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1:
		return "Invalid API key"
	default:
		return ""
	}
}

// sendSuccess wraps data in an APIResponse with status 200.
func sendSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// sendError writes message as a failed APIResponse.
func sendError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, APIResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
