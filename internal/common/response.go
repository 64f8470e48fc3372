package common

import (
	"encoding/json"
	"net/http"

	"shopsync/internal/platform/config"
)

type ErrorResponse struct {
	Error string `json:"error"`
	// Product is set when a sync failure still left a persisted local product
	// behind, so the client can show the row with its sync_failed status.
	Product interface{} `json:"product,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	// Unexpected failures keep their detail out of production responses.
	if code == http.StatusInternalServerError &&
		config.AppConfig != nil && config.AppConfig.AppEnv != "development" {
		message = ErrInternalServer.Error()
	}
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithErrorPayload reports an error together with an entity the
// operation still produced (a create/update whose remote sync failed).
func RespondWithErrorPayload(w http.ResponseWriter, code int, message string, payload interface{}) {
	RespondWithJSON(w, code, ErrorResponse{Error: message, Product: payload})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
