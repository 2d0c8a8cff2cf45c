package utils

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the uniform envelope for message-only responses.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteMessage writes the uniform {success, message} envelope. Business
// failures ride HTTP 200 like every other response; the success flag is the
// contract, not the status code.
func WriteMessage(w http.ResponseWriter, success bool, message string) {
	WriteJSONResponse(w, http.StatusOK, MessageResponse{Success: success, Message: message})
}
