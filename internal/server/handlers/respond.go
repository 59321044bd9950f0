// internal/server/handlers/respond.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"skraper/internal/domain/scrape"
	"skraper/internal/logger"
)

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Error("Failed to marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil && code >= 500 {
		logger.Log.Error("HTTP error",
			zap.Int("code", code),
			zap.String("message", message),
			zap.Error(err),
		)
	}

	respondWithJSON(w, code, map[string]string{"error": message})
}

// RespondWithError writes {"error": message}. The router uses it for its own
// 404, 405 and panic responses.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	respondWithError(w, code, message, nil)
}

// respondWithFailure reports a pipeline error as {error, success: false}
func respondWithFailure(w http.ResponseWriter, err error) {
	code := scrape.HTTPStatus(err)

	var failed *scrape.ScrapeFailedError
	switch {
	case code >= 500 && errors.As(err, &failed):
		logger.Log.Error("Scrape request failed",
			zap.Int("exit_code", failed.ExitCode),
			zap.String("stderr", failed.Stderr),
		)
	case code >= 500:
		logger.Log.Error("Scrape request failed", zap.Error(err))
	}

	respondWithJSON(w, code, map[string]interface{}{
		"error":   scrape.PublicMessage(err),
		"success": false,
	})
}
