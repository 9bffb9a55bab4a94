package controller

import (
	"encoding/json"
	"log"
	"net/http"

	"inmobiliaria-api/apperrors"
)

// writeJSON serializes v with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// writeValidationError answers 400 with the per-field messages
func writeValidationError(w http.ResponseWriter, detalles []string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"mensaje":  "Error de validación",
		"detalles": detalles,
	})
}

// writeError maps a repository or service error to its HTTP status.
// fallback is the message used for unclassified (persistence) failures.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeValidation:
		if detalles := apperrors.DetallesOf(err); len(detalles) > 0 {
			writeValidationError(w, detalles)
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	case apperrors.CodeBusinessRule:
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	case apperrors.CodeNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case apperrors.CodeUnauthorized:
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message": fallback,
			"error":   err.Error(),
		})
	}
}
