package httpapi

import (
	"encoding/json"
	"net/http"

	"veg-catering/catering-svc/internal/service"
)

// preferencesRequest is the wrapped update body. A bare preferences object
// is accepted as well.
type preferencesRequest struct {
	Preferences json.RawMessage `json:"preferences"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if !decodeJSON(w, r, &input) {
		return
	}
	result, err := h.Auth.Register(r.Context(), input)
	if err != nil {
		writeError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Current(r.Context(), claimsFrom(r.Context()))
	if err != nil {
		writeError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// updatePreferences applies the fields present in the body on top of the
// stored preferences.
func (h *Handler) updatePreferences(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Current(r.Context(), claimsFrom(r.Context()))
	if err != nil {
		writeError(w, r, err, "user")
		return
	}

	var body json.RawMessage
	if !decodeJSON(w, r, &body) {
		return
	}
	var wrapped preferencesRequest
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Preferences) > 0 && string(wrapped.Preferences) != "null" {
		body = wrapped.Preferences
	}

	prefs := user.Preferences.Clone()
	if err := json.Unmarshal(body, &prefs); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Users.UpdatePreferences(r.Context(), user.ID, prefs)
	if err != nil {
		writeError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
