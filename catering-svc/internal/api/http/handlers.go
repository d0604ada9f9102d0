package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"veg-catering/catering-svc/internal/domain"
	"veg-catering/catering-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Catalog  service.CatalogServiceInterface
	Bookings service.BookingServiceInterface
	Contacts service.ContactServiceInterface
	Auth     service.AuthServiceInterface
	Users    service.UserServiceInterface
	Admin    service.AdminServiceInterface
}

func NewHandler(
	catalog service.CatalogServiceInterface,
	bookings service.BookingServiceInterface,
	contacts service.ContactServiceInterface,
	auth service.AuthServiceInterface,
	users service.UserServiceInterface,
	admin service.AdminServiceInterface,
) *Handler {
	return &Handler{
		Catalog:  catalog,
		Bookings: bookings,
		Contacts: contacts,
		Auth:     auth,
		Users:    users,
		Admin:    admin,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/cuisines", h.listCuisines).Methods(http.MethodGet)
	api.HandleFunc("/cuisines/{id}", h.getCuisine).Methods(http.MethodGet)
	api.HandleFunc("/cuisines/{id}/dishes", h.cuisineDishes).Methods(http.MethodGet)
	api.HandleFunc("/dishes", h.listDishes).Methods(http.MethodGet)
	api.HandleFunc("/dishes/{id}", h.getDish).Methods(http.MethodGet)
	api.HandleFunc("/quote", h.quote).Methods(http.MethodPost)
	api.HandleFunc("/bookings", h.createBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/qrcode", h.bookingQRCode).Methods(http.MethodGet)
	api.HandleFunc("/contacts", h.createContact).Methods(http.MethodPost)

	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	api.Handle("/auth/user", h.authenticate(http.HandlerFunc(h.currentUser))).Methods(http.MethodGet)
	api.Handle("/auth/preferences", h.authenticate(http.HandlerFunc(h.updatePreferences))).Methods(http.MethodPut)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.authenticate, h.requireRole(domain.RoleAdmin))
	admin.HandleFunc("/users", h.adminUsers).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", h.adminBookings).Methods(http.MethodGet)
	admin.HandleFunc("/contacts", h.adminContacts).Methods(http.MethodGet)
	admin.HandleFunc("/stats", h.adminStats).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", h.updateBookingStatus).Methods(http.MethodPut)
	admin.HandleFunc("/contacts/{id}/read", h.markContactRead).Methods(http.MethodPut)
	admin.HandleFunc("/cuisines", h.createCuisine).Methods(http.MethodPost)
	admin.HandleFunc("/dishes", h.createDish).Methods(http.MethodPost)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "catering-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) listCuisines(w http.ResponseWriter, r *http.Request) {
	cuisines, err := h.Catalog.ListCuisines(r.Context())
	if err != nil {
		writeError(w, r, err, "cuisine")
		return
	}
	writeJSON(w, http.StatusOK, cuisines)
}

func (h *Handler) getCuisine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "cuisine")
	if !ok {
		return
	}
	cuisine, err := h.Catalog.GetCuisine(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "cuisine")
		return
	}
	writeJSON(w, http.StatusOK, cuisine)
}

func (h *Handler) listDishes(w http.ResponseWriter, r *http.Request) {
	cuisineID := 0
	if raw := r.URL.Query().Get("cuisineId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{
				Message: "invalid query",
				Errors:  map[string]string{"cuisineId": "cuisineId must be a positive integer"},
			})
			return
		}
		cuisineID = id
	}

	dishes, err := h.Catalog.ListDishes(r.Context(), cuisineID)
	if err != nil {
		writeError(w, r, err, "dish")
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) cuisineDishes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "cuisine")
	if !ok {
		return
	}
	dishes, err := h.Catalog.ListDishes(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "dish")
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "dish")
	if !ok {
		return
	}
	dish, err := h.Catalog.GetDish(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "dish")
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

type quoteRequest struct {
	Dishes     json.RawMessage `json:"dishes"`
	GuestCount int             `json:"guestCount"`
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lines, err := parseCartLines(req.Dishes)
	if err != nil {
		writeError(w, r, err, "dish")
		return
	}
	selection, err := h.Catalog.ResolveCart(r.Context(), lines)
	if err != nil {
		writeError(w, r, err, "dish")
		return
	}
	writeJSON(w, http.StatusOK, h.Bookings.Quote(selection, req.GuestCount))
}

// bookingRequest accepts the dishes either as an array or as a JSON string
// holding the array. Any client supplied totalPrice is ignored.
type bookingRequest struct {
	service.BookingForm
	Dishes json.RawMessage `json:"dishes"`
}

func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lines, err := parseCartLines(req.Dishes)
	if err != nil {
		writeError(w, r, err, "booking")
		return
	}
	selection, err := h.Catalog.ResolveCart(r.Context(), lines)
	if err != nil {
		writeError(w, r, err, "booking")
		return
	}

	booking, err := h.Bookings.Submit(r.Context(), req.BookingForm, selection)
	if err != nil {
		writeError(w, r, err, "booking")
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *Handler) bookingQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "booking")
	if !ok {
		return
	}
	png, err := h.Bookings.QRCode(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "booking")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	var form service.ContactForm
	if !decodeJSON(w, r, &form) {
		return
	}
	contact, err := h.Contacts.Submit(r.Context(), form)
	if err != nil {
		writeError(w, r, err, "contact")
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

var errBadDishes = &service.ValidationError{
	Message: "invalid menu selection",
	Fields:  map[string]string{"dishes": "dishes must be a list of {id, quantity}"},
}

func parseCartLines(raw json.RawMessage) ([]service.CartLine, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, errBadDishes
		}
		if inner == "" {
			return nil, nil
		}
		raw = json.RawMessage(inner)
	}

	var lines []service.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, errors.Join(errBadDishes, err)
	}
	return lines, nil
}
