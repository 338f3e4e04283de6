package app

import "errors"

var (
	// ErrInvalidCredentials is returned for unknown identifiers and wrong
	// passwords alike, so login failures never reveal which part was wrong.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	ErrFieldsRequired           = errors.New("All fields are required")
	ErrInvalidRole              = errors.New("Invalid user type")
	ErrAccountExists            = errors.New("Username or email already exists")
	ErrUsernamePasswordRequired = errors.New("Username and password are required")

	ErrBrandRequired     = errors.New("Brand is required")
	ErrProductNotFound   = errors.New("Product not found")
	ErrImageNotFound     = errors.New("Image not found")
	ErrImagePathRequired = errors.New("Image path is required")
	ErrSerialNumberTaken = errors.New("Serial number already exists")

	ErrAlreadyInList = errors.New("Product is already in your list")
	ErrNotInList     = errors.New("Product not found in list")
	ErrListEmpty     = errors.New("List is empty")

	ErrContactFieldsRequired = errors.New("Required fields missing")
	ErrRoleRequired          = errors.New("User type is required for unregistered users")

	ErrSentListNotFound = errors.New("Sent list not found")
	ErrBookingNotFound  = errors.New("Booking not found")
	ErrCustomerNotFound = errors.New("Customer not found")
	ErrLeadNotFound     = errors.New("Customer record not found")
)
