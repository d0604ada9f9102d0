package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"veg-catering/catering-svc/internal/domain"
	"veg-catering/catering-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message})
}

// writeError maps service errors onto status codes. entity names the resource
// in 404 messages.
func writeError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	if verr, ok := service.IsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: verr.Message, Errors: verr.Fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	default:
		loggerFrom(r.Context()).Error("request failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, entity string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusNotFound, entity+" not found")
		return 0, false
	}
	return id, true
}
