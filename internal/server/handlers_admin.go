package server

import (
	"errors"
	"net/http"

	"printerstore/internal/app"
	"printerstore/pkg/domain"
)

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	bookings, err := s.app.ListBookings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleBookingByID(w http.ResponseWriter, r *http.Request, admin domain.User) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id, ok := pathID(r, "/api/bookings/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := s.app.DeleteBooking(id); err != nil {
		writeAdminError(w, err, "Failed to delete booking")
		return
	}
	s.audit(r, "booking.delete", "success", "user_id", admin.ID, "booking_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted successfully"})
}

func (s *Server) handleSentLists(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	lists, err := s.app.ListSentLists()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch sent lists")
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleSentListByID(w http.ResponseWriter, r *http.Request, admin domain.User) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id, ok := pathID(r, "/api/sent-lists/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := s.app.DeleteSentList(id); err != nil {
		writeAdminError(w, err, "Failed to delete sent list")
		return
	}
	s.audit(r, "sentlist.delete", "success", "user_id", admin.ID, "sent_list_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sent list deleted successfully"})
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	customers, err := s.app.ListCustomers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	views := make([]userView, 0, len(customers))
	for _, c := range customers {
		views = append(views, viewOf(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCustomerByID(w http.ResponseWriter, r *http.Request, admin domain.User) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id, ok := pathID(r, "/api/registered-customers/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := s.app.DeleteCustomer(id); err != nil {
		writeAdminError(w, err, "Failed to delete customer")
		return
	}
	s.audit(r, "customer.delete", "success", "user_id", admin.ID, "customer_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	leads, err := s.app.ListUnregisteredLeads()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch leads")
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (s *Server) handleLeadByID(w http.ResponseWriter, r *http.Request, admin domain.User) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id, ok := pathID(r, "/api/unregistered-customers/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := s.app.DeleteUnregisteredLead(id); err != nil {
		writeAdminError(w, err, "Failed to delete lead")
		return
	}
	s.audit(r, "lead.delete", "success", "user_id", admin.ID, "lead_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Lead deleted successfully"})
}

func writeAdminError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrBookingNotFound),
		errors.Is(err, app.ErrSentListNotFound),
		errors.Is(err, app.ErrCustomerNotFound),
		errors.Is(err, app.ErrLeadNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
