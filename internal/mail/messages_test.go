package mail

import (
	"strings"
	"testing"

	"printerstore/pkg/domain"
)

func TestSentListMessage(t *testing.T) {
	user := domain.User{Username: "alice", Email: "alice@example.com", Role: domain.RoleDealer}
	products := []domain.Product{
		{Name: "LaserJet M15", Brand: "HP", Series: "LaserJet", Model: "M15w"},
		{Brand: "Epson", Model: "L3250"},
	}
	msg := SentListMessage("sales@example.com", user, products)

	if len(msg.To) != 1 || msg.To[0] != "sales@example.com" {
		t.Fatalf("to = %v", msg.To)
	}
	if !strings.Contains(msg.Subject, "alice") {
		t.Fatalf("subject = %q", msg.Subject)
	}
	for _, want := range []string{"alice@example.com", "dealer", "1. ", "2. ", "HP LaserJet M15w", "Epson L3250"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestBookingMessageOmitsEmptyFields(t *testing.T) {
	msg := BookingMessage("sales@example.com", domain.Booking{
		SenderName: "Jo",
		Email:      "jo@example.com",
		Details:    "demo unit next week",
		Status:     domain.StatusUnregistered,
	})
	if strings.Contains(msg.Body, "Phone:") || strings.Contains(msg.Body, "Company:") {
		t.Fatalf("body carries empty fields:\n%s", msg.Body)
	}
	for _, want := range []string{"Jo", "jo@example.com", "demo unit next week", "Unregistered"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestInquiryMessage(t *testing.T) {
	msg := InquiryMessage("sales@example.com", "Bob", "bob@example.com", "Toner pricing", "price for 5 units")
	if len(msg.To) != 1 || msg.To[0] != "sales@example.com" {
		t.Fatalf("to = %v", msg.To)
	}
	if !strings.Contains(msg.Subject, "Toner pricing") {
		t.Fatalf("subject = %q", msg.Subject)
	}
	for _, want := range []string{"Bob", "bob@example.com", "price for 5 units"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
}
