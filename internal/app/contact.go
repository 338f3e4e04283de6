package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"printerstore/internal/mail"
	"printerstore/pkg/domain"
	"printerstore/pkg/store"
)

// BookingRequest is a demo/visit booking submitted through the contact
// form.
type BookingRequest struct {
	Email       string
	Phone       string
	CompanyName string
	SenderName  string
	Details     string
	Role        string
}

// InquiryRequest is a general question submitted through the contact
// form.
type InquiryRequest struct {
	Name        string
	Email       string
	Topic       string
	Description string
	Role        string
}

// SubmitBooking persists the booking and notifies the sales inbox.
// Role and registration status are frozen at submission time: a
// registered account contributes its current role, an unregistered
// visitor must supply one and additionally becomes a lead row.
func (a *App) SubmitBooking(ctx context.Context, req BookingRequest) error {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.SenderName) == "" || strings.TrimSpace(req.Details) == "" {
		return ErrContactFieldsRequired
	}

	user, registered, err := a.store.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}

	booking := domain.Booking{
		Email:       email,
		Phone:       strings.TrimSpace(req.Phone),
		CompanyName: strings.TrimSpace(req.CompanyName),
		SenderName:  strings.TrimSpace(req.SenderName),
		Details:     req.Details,
		CreatedAt:   time.Now().UTC(),
	}
	if registered {
		booking.Role = user.Role
		booking.Status = domain.StatusRegistered
	} else {
		role, ok := domain.ParseRole(req.Role)
		if !ok {
			if strings.TrimSpace(req.Role) == "" {
				return ErrRoleRequired
			}
			return ErrInvalidRole
		}
		booking.Role = role
		booking.Status = domain.StatusUnregistered
		if _, err := a.store.CreateUnregisteredLead(domain.UnregisteredLead{
			Name:        booking.SenderName,
			Email:       email,
			Phone:       booking.Phone,
			CompanyName: booking.CompanyName,
			Role:        role,
			Message:     req.Details,
			MessageType: domain.LeadBooking,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("create lead: %w", err)
		}
	}

	saved, err := a.store.CreateBooking(booking)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	if a.salesEmail != "" {
		if err := a.mailer.Send(ctx, mail.BookingMessage(a.salesEmail, saved)); err != nil {
			slog.Warn("booking_mail_failed", "booking_id", saved.ID, "error", err)
		}
	}
	return nil
}

// SubmitInquiry forwards an inquiry to the sales inbox. Unregistered
// visitors become a lead row first; registered accounts are email-only,
// their contact data already lives in users.
func (a *App) SubmitInquiry(ctx context.Context, req InquiryRequest) error {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" ||
		strings.TrimSpace(req.Topic) == "" || strings.TrimSpace(req.Description) == "" {
		return ErrContactFieldsRequired
	}

	_, registered, err := a.store.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if !registered {
		role, ok := domain.ParseRole(req.Role)
		if !ok {
			if strings.TrimSpace(req.Role) == "" {
				return ErrRoleRequired
			}
			return ErrInvalidRole
		}
		if _, err := a.store.CreateUnregisteredLead(domain.UnregisteredLead{
			Name:        name,
			Email:       email,
			Role:        role,
			Message:     req.Description,
			MessageType: domain.LeadInquiry,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("create lead: %w", err)
		}
	}

	if a.salesEmail != "" {
		msg := mail.InquiryMessage(a.salesEmail, name, email, req.Topic, req.Description)
		if err := a.mailer.Send(ctx, msg); err != nil {
			slog.Warn("inquiry_mail_failed", "email", email, "error", err)
		}
	}
	return nil
}

// ListBookings returns all bookings for the admin dashboard.
func (a *App) ListBookings() ([]domain.Booking, error) {
	return a.store.ListBookings()
}

// DeleteBooking removes a booking.
func (a *App) DeleteBooking(id uint) error {
	if err := a.store.DeleteBooking(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// ListUnregisteredLeads returns captured unregistered-visitor leads.
func (a *App) ListUnregisteredLeads() ([]domain.UnregisteredLead, error) {
	return a.store.ListUnregisteredLeads()
}

// DeleteUnregisteredLead removes a lead row.
func (a *App) DeleteUnregisteredLead(id uint) error {
	if err := a.store.DeleteUnregisteredLead(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}
