package httpserver

import (
	"encoding/json"
	"net/http"
)

// messageResponse is the body of /health and of every error.
type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func respondMessage(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, messageResponse{Message: message})
}
