package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]interface{}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondError writes the failure envelope {success:false, message}.
func RespondError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": false, "message": msg})
}

// RespondSuccess writes {success:true, message?, data?}.
func RespondSuccess(w http.ResponseWriter, code int, msg string, data interface{}) {
	resp := M{"success": true}
	if msg != "" {
		resp["message"] = msg
	}
	if data != nil {
		resp["data"] = data
	}
	RespondWithJSON(w, code, resp)
}
