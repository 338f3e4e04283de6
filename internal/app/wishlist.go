package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"printerstore/internal/mail"
	"printerstore/pkg/domain"
	"printerstore/pkg/store"
)

// AddToList puts a product on the user's wish list.
func (a *App) AddToList(userID, productID uint) error {
	_, found, err := a.store.GetProduct(productID)
	if err != nil {
		return fmt.Errorf("fetch product: %w", err)
	}
	if !found {
		return ErrProductNotFound
	}
	if err := a.store.AddWishListEntry(userID, productID); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrAlreadyInList
		}
		return fmt.Errorf("add to list: %w", err)
	}
	return nil
}

// RemoveFromList takes a product off the user's wish list.
func (a *App) RemoveFromList(userID, productID uint) error {
	if err := a.store.RemoveWishListEntry(userID, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotInList
		}
		return fmt.Errorf("remove from list: %w", err)
	}
	return nil
}

// MyList returns the user's wish list, oldest entry first.
func (a *App) MyList(userID uint) ([]domain.Product, error) {
	return a.store.ListWishListProducts(userID)
}

// SendList snapshots the wish list into a sent list and notifies the
// sales inbox. The snapshot is persisted first; a mail failure is logged
// and does not fail the request.
func (a *App) SendList(ctx context.Context, user domain.User) (domain.SentList, error) {
	list, products, err := a.store.CreateSentList(user.ID)
	if err != nil {
		if errors.Is(err, store.ErrListEmpty) {
			return domain.SentList{}, ErrListEmpty
		}
		return domain.SentList{}, fmt.Errorf("create sent list: %w", err)
	}
	if a.salesEmail != "" {
		msg := mail.SentListMessage(a.salesEmail, user, products)
		if err := a.mailer.Send(ctx, msg); err != nil {
			slog.Warn("sent_list_mail_failed", "user_id", user.ID, "error", err)
		}
	}
	return list, nil
}

// ListSentLists returns all sent-list snapshots for the admin dashboard.
func (a *App) ListSentLists() ([]domain.SentList, error) {
	return a.store.ListSentLists()
}

// DeleteSentList removes a snapshot.
func (a *App) DeleteSentList(id uint) error {
	if err := a.store.DeleteSentList(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSentListNotFound
		}
		return fmt.Errorf("delete sent list: %w", err)
	}
	return nil
}
