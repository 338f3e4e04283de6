package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"printerstore/internal/app"
)

type bookingRequest struct {
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	CompanyName    string `json:"companyName"`
	SenderName     string `json:"senderName"`
	BookingDetails string `json:"bookingDetails"`
	UserType       string `json:"userType"`
}

type inquiryRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	UserType    string `json:"userType"`
}

func (s *Server) handleBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.contactLimiter, "Too many contact requests, try again later") {
		return
	}
	var req bookingRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	err := s.app.SubmitBooking(r.Context(), app.BookingRequest{
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		SenderName:  req.SenderName,
		Details:     req.BookingDetails,
		Role:        req.UserType,
	})
	if err != nil {
		s.audit(r, "contact.booking", "fail", "reason", err.Error())
		writeContactError(w, err, "Failed to send booking request")
		return
	}
	s.audit(r, "contact.booking", "success")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking request sent successfully"})
}

func (s *Server) handleInquiry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.contactLimiter, "Too many contact requests, try again later") {
		return
	}
	var req inquiryRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	err := s.app.SubmitInquiry(r.Context(), app.InquiryRequest{
		Name:        req.Name,
		Email:       req.Email,
		Topic:       req.Topic,
		Description: req.Description,
		Role:        req.UserType,
	})
	if err != nil {
		s.audit(r, "contact.inquiry", "fail", "reason", err.Error())
		writeContactError(w, err, "Failed to send inquiry")
		return
	}
	s.audit(r, "contact.inquiry", "success")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Inquiry sent successfully"})
}

func writeContactError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrContactFieldsRequired),
		errors.Is(err, app.ErrRoleRequired),
		errors.Is(err, app.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
