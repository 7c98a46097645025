package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

func respondWithValidationError(fields validator.ValidationErrorsTranslations, w http.ResponseWriter) {
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"message": "Validation failed",
		"errors":  fields,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
