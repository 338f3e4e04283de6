package mail

import (
	"fmt"
	"strings"

	"printerstore/pkg/domain"
)

// SentListMessage notifies the sales inbox that a customer submitted
// their wish list.
func SentListMessage(salesEmail string, user domain.User, products []domain.Product) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer %s (%s, %s) sent a product list:\n\n", user.Username, user.Email, user.Role)
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s\n", i+1, productLine(p))
	}
	return Message{
		To:      []string{salesEmail},
		Subject: fmt.Sprintf("Product list from %s", user.Username),
		Body:    b.String(),
	}
}

// BookingMessage notifies the sales inbox about a new booking request.
func BookingMessage(salesEmail string, booking domain.Booking) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "New booking request (%s):\n\n", booking.Status)
	fmt.Fprintf(&b, "Name: %s\n", booking.SenderName)
	fmt.Fprintf(&b, "Email: %s\n", booking.Email)
	if booking.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", booking.Phone)
	}
	if booking.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s\n", booking.CompanyName)
	}
	if booking.Role != "" {
		fmt.Fprintf(&b, "Role: %s\n", booking.Role)
	}
	fmt.Fprintf(&b, "\n%s\n", booking.Details)
	return Message{
		To:      []string{salesEmail},
		Subject: fmt.Sprintf("Booking request from %s", booking.SenderName),
		Body:    b.String(),
	}
}

// InquiryMessage forwards a general inquiry to the sales inbox.
func InquiryMessage(salesEmail, name, email, topic, description string) Message {
	var b strings.Builder
	b.WriteString("New inquiry:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Email: %s\n", email)
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "\n%s\n", description)
	return Message{
		To:      []string{salesEmail},
		Subject: fmt.Sprintf("General inquiry: %s", topic),
		Body:    b.String(),
	}
}

func productLine(p domain.Product) string {
	parts := []string{}
	for _, part := range []string{p.Brand, p.Series, p.Model} {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	label := strings.Join(parts, " ")
	if label == "" {
		label = p.Name
	}
	if p.Name != "" && p.Name != label {
		label = fmt.Sprintf("%s (%s)", p.Name, label)
	}
	return label
}
