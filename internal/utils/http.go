package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it with statusCode.
//
// The "Content-Type" header is set to "application/json; charset=utf-8".
// If marshaling fails, the client receives 500 Internal Server Error and
// the wrapped error is returned so the caller can log it.
//
// Example usage:
//
//	utils.WriteJSON(w, movie, http.StatusOK)
//	utils.WriteJSON(w, models.DeletedResponse{ID: id}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
