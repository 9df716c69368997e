package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	respondWithJSON(w, statusCode, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

func renderTemplate(w http.ResponseWriter, logger zerolog.Logger, templates *TemplateCache, name string, data any) {
	tmpl := templates.Get(name)
	if tmpl == nil {
		logger.Error().Str("template", name).Msg("Template not found")
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		logger.Error().Err(err).Str("template", name).Msg("Template execution failed")
	}
}
