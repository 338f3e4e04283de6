package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"printerstore/pkg/auth"
	"printerstore/pkg/domain"
	"printerstore/pkg/store"
)

// Register creates a dealer or end-user account and issues a token.
func (a *App) Register(username, email, password, role string) (domain.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" || strings.TrimSpace(role) == "" {
		return domain.User{}, "", ErrFieldsRequired
	}
	parsed, ok := domain.ParseRole(role)
	if !ok || parsed == domain.RoleAdmin {
		return domain.User{}, "", ErrInvalidRole
	}
	if err := auth.ValidatePassword(password); err != nil {
		return domain.User{}, "", err
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	user, err := a.store.CreateUser(domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         parsed,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.User{}, "", ErrAccountExists
		}
		return domain.User{}, "", fmt.Errorf("create user: %w", err)
	}
	token, err := a.tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login validates credentials and issues a token. The identifier may be
// a username or an email address.
func (a *App) Login(identifier, password string) (domain.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return domain.User{}, "", ErrUsernamePasswordRequired
	}
	user, found, err := a.store.GetUserByUsernameOrEmail(identifier)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
	}
	if !found || !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	token, err := a.tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// UserFromToken verifies the token and loads the authoritative user row,
// so role changes and deletions take effect immediately.
func (a *App) UserFromToken(token string) (domain.User, bool) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return domain.User{}, false
	}
	user, found, err := a.store.GetUserByID(claims.UserID)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}

// SeedAdmin creates the admin account at startup when it does not exist
// yet. Losing a concurrent create is fine; the account is there either
// way.
func (a *App) SeedAdmin(username, email, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	exists, err := a.store.HasUsername(username)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return nil
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = a.store.CreateUser(domain.User{
		Username:     username,
		Email:        strings.TrimSpace(strings.ToLower(email)),
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, store.ErrConflict) {
		slog.Info("admin_seed_skipped_account_exists", "username", username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("admin_seeded", "username", username)
	return nil
}

// ListCustomers returns all dealer and end-user accounts.
func (a *App) ListCustomers() ([]domain.User, error) {
	return a.store.ListCustomers()
}

// DeleteCustomer removes a customer account with its wish-list entries
// and sent lists.
func (a *App) DeleteCustomer(id uint) error {
	if err := a.store.DeleteCustomer(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
