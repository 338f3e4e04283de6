package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDealer  Role = "dealer"
	RoleEndUser Role = "enduser"

	// RoleUnknown is a display-only fallback for legacy booking rows
	// with neither a frozen role nor a matching account. ParseRole
	// never produces it.
	RoleUnknown Role = "unknown"
)

// RegistrationStatus records whether a contact submission matched a
// registered account at the time it was written. It is frozen on the row
// and never updated retroactively.
type RegistrationStatus string

const (
	StatusRegistered   RegistrationStatus = "Registered"
	StatusUnregistered RegistrationStatus = "Unregistered"
)

// LeadType distinguishes the form an unregistered lead came in through.
type LeadType string

const (
	LeadBooking LeadType = "booking"
	LeadInquiry LeadType = "inquiry"
)

type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Product struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Series       string    `json:"series,omitempty"`
	Model        string    `json:"model,omitempty"`
	SerialNumber string    `json:"serialNumber,omitempty"`
	Description  string    `json:"description,omitempty"`
	// Image is the primary image reference, stored directly on the
	// product and distinct from the ordered additional images.
	Image        string         `json:"image,omitempty"`
	DealerPrice  *float64       `json:"dealerPrice,omitempty"`
	EndUserPrice *float64       `json:"endUserPrice,omitempty"`
	Warranty     string         `json:"warranty,omitempty"`
	Type         string         `json:"type,omitempty"`
	Images       []ProductImage `json:"additionalImages"`
	Categories   []string       `json:"categories"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type ProductImage struct {
	ID           uint      `json:"id"`
	ProductID    uint      `json:"productId"`
	ImagePath    string    `json:"imagePath"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

type WishListEntry struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	ProductID uint      `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SentList is a point-in-time snapshot of a user's wish list. The product
// id set is copied at send time and never mutated afterwards; ids may
// refer to products deleted later.
type SentList struct {
	ID         uint              `json:"id"`
	UserID     uint              `json:"userId"`
	Username   string            `json:"username,omitempty"`
	Email      string            `json:"email,omitempty"`
	ProductIDs []uint            `json:"productIds"`
	Products   []SentListProduct `json:"products,omitempty"`
	SentAt     time.Time         `json:"sentAt"`
}

// SentListProduct is the read-time product detail joined onto a sent
// list; products deleted since the snapshot are omitted.
type SentListProduct struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Brand  string `json:"brand"`
	Series string `json:"series,omitempty"`
	Model  string `json:"model,omitempty"`
}

type Booking struct {
	ID          uint               `json:"id"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	CompanyName string             `json:"companyName,omitempty"`
	SenderName  string             `json:"senderName"`
	Details     string             `json:"bookingDetails"`
	Role        Role               `json:"role"`
	Status      RegistrationStatus `json:"registrationStatus"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// UnregisteredLead records a booking or inquiry submitted by an email
// address with no matching account.
type UnregisteredLead struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	Role        Role      `json:"role"`
	Message     string    `json:"message"`
	MessageType LeadType  `json:"messageType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ParseRole maps external role strings onto the canonical enum. Input is
// normalized once here; nothing downstream branches on casing.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleDealer:
		return RoleDealer, true
	case RoleEndUser:
		return RoleEndUser, true
	default:
		return "", false
	}
}
