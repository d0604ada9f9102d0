package httpapi

import (
	"net/http"

	"veg-catering/catering-svc/internal/domain"
)

type statusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

func (h *Handler) adminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Admin.Users(r.Context())
	if err != nil {
		writeError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) adminBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Admin.Bookings(r.Context())
	if err != nil {
		writeError(w, r, err, "booking")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *Handler) adminContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Admin.Contacts(r.Context())
	if err != nil {
		writeError(w, r, err, "contact")
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Admin.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err, "dashboard")
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (h *Handler) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "booking")
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	booking, err := h.Bookings.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err, "booking")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *Handler) markContactRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "contact")
	if !ok {
		return
	}
	contact, err := h.Contacts.MarkRead(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "contact")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *Handler) createCuisine(w http.ResponseWriter, r *http.Request) {
	var cuisine domain.Cuisine
	if !decodeJSON(w, r, &cuisine) {
		return
	}
	cuisine.ID = 0
	if err := h.Catalog.CreateCuisine(r.Context(), &cuisine); err != nil {
		writeError(w, r, err, "cuisine")
		return
	}
	writeJSON(w, http.StatusCreated, cuisine)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	var dish domain.Dish
	if !decodeJSON(w, r, &dish) {
		return
	}
	dish.ID = 0
	if err := h.Catalog.CreateDish(r.Context(), &dish); err != nil {
		writeError(w, r, err, "dish")
		return
	}
	writeJSON(w, http.StatusCreated, dish)
}
