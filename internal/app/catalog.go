package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"printerstore/pkg/domain"
	"printerstore/pkg/store"
)

// ProductInput carries the scalar product fields shared by create and
// update.
type ProductInput struct {
	Name         string
	Brand        string
	Series       string
	Model        string
	SerialNumber string
	Description  string
	Warranty     string
	Type         string
	DealerPrice  *float64
	EndUserPrice *float64
	Categories   []string
}

// Upload is one image file taken from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ListProducts returns the filtered catalog. The unfiltered listing is
// served from the redis cache when possible.
func (a *App) ListProducts(ctx context.Context, filter store.ProductFilter) ([]domain.Product, error) {
	unfiltered := filter.Category == "" && filter.Search == ""
	if unfiltered {
		if products, ok := a.cache.get(ctx); ok {
			return products, nil
		}
	}
	products, err := a.store.ListProducts(filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if unfiltered {
		a.cache.set(ctx, products)
	}
	return products, nil
}

// GetProduct returns one product with images and categories.
func (a *App) GetProduct(id uint) (domain.Product, error) {
	product, found, err := a.store.GetProduct(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("fetch product: %w", err)
	}
	if !found {
		return domain.Product{}, ErrProductNotFound
	}
	return product, nil
}

// ListCategories returns the distinct category tag set, sorted.
func (a *App) ListCategories() ([]string, error) {
	return a.store.ListCategories()
}

// CreateProduct stores the uploaded images, then inserts the product in
// one transaction. When the insert fails, the stored files are removed
// so no orphans accumulate.
func (a *App) CreateProduct(ctx context.Context, input ProductInput, uploads []Upload) (domain.Product, error) {
	if strings.TrimSpace(input.Brand) == "" {
		return domain.Product{}, ErrBrandRequired
	}
	if strings.TrimSpace(input.Name) == "" {
		input.Name = input.Series
	}

	refs, err := a.saveUploads(ctx, uploads)
	if err != nil {
		return domain.Product{}, err
	}

	newProduct := store.NewProduct{
		Name:         strings.TrimSpace(input.Name),
		Brand:        strings.TrimSpace(input.Brand),
		Series:       strings.TrimSpace(input.Series),
		Model:        strings.TrimSpace(input.Model),
		SerialNumber: input.SerialNumber,
		Description:  input.Description,
		Warranty:     input.Warranty,
		Type:         input.Type,
		DealerPrice:  input.DealerPrice,
		EndUserPrice: input.EndUserPrice,
		Categories:   input.Categories,
	}
	if len(refs) > 0 {
		newProduct.Image = refs[0]
		newProduct.ExtraImages = refs[1:]
	}

	product, err := a.store.CreateProduct(newProduct)
	if err != nil {
		a.removeImages(ctx, refs)
		if errors.Is(err, store.ErrConflict) {
			return domain.Product{}, ErrSerialNumberTaken
		}
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	a.cache.invalidate(ctx)
	return product, nil
}

// UpdateProduct applies a full update. keepExisting controls image
// handling: true appends the uploads after the current images, false
// makes the first upload the new primary and replaces all additional
// rows. New files are removed again if the transaction fails.
func (a *App) UpdateProduct(ctx context.Context, id uint, input ProductInput, uploads []Upload, keepExisting bool) error {
	if strings.TrimSpace(input.Brand) == "" {
		return ErrBrandRequired
	}
	if strings.TrimSpace(input.Name) == "" {
		input.Name = input.Series
	}

	refs, err := a.saveUploads(ctx, uploads)
	if err != nil {
		return err
	}

	err = a.store.UpdateProduct(id, store.ProductUpdate{
		Name:          strings.TrimSpace(input.Name),
		Brand:         strings.TrimSpace(input.Brand),
		Series:        strings.TrimSpace(input.Series),
		Model:         strings.TrimSpace(input.Model),
		SerialNumber:  input.SerialNumber,
		Description:   input.Description,
		Warranty:      input.Warranty,
		Type:          input.Type,
		DealerPrice:   input.DealerPrice,
		EndUserPrice:  input.EndUserPrice,
		Categories:    input.Categories,
		NewImages:     refs,
		ReplaceImages: !keepExisting,
	})
	if err != nil {
		a.removeImages(ctx, refs)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ErrProductNotFound
		case errors.Is(err, store.ErrConflict):
			return ErrSerialNumberTaken
		}
		return fmt.Errorf("update product: %w", err)
	}
	a.cache.invalidate(ctx)
	return nil
}

// DeleteProduct removes the product and cascaded rows, then deletes the
// stored image files best-effort.
func (a *App) DeleteProduct(ctx context.Context, id uint) error {
	refs, err := a.store.DeleteProduct(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	a.removeImages(ctx, refs)
	a.cache.invalidate(ctx)
	return nil
}

// DeleteProductImage removes one additional image row.
func (a *App) DeleteProductImage(ctx context.Context, productID, imageID uint) error {
	if err := a.store.DeleteProductImage(productID, imageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("delete product image: %w", err)
	}
	a.cache.invalidate(ctx)
	return nil
}

// SetMainImage repoints the primary image to an already-stored reference.
func (a *App) SetMainImage(ctx context.Context, productID uint, imagePath string) error {
	if strings.TrimSpace(imagePath) == "" {
		return ErrImagePathRequired
	}
	if err := a.store.SetPrimaryImage(productID, imagePath); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("set main image: %w", err)
	}
	a.cache.invalidate(ctx)
	return nil
}

// saveUploads stores every file under a fresh uuid name. On failure the
// already-stored files are removed and the error returned.
func (a *App) saveUploads(ctx context.Context, uploads []Upload) ([]string, error) {
	refs := make([]string, 0, len(uploads))
	for _, up := range uploads {
		name := uuid.New().String() + strings.ToLower(filepath.Ext(up.Filename))
		ref, err := a.images.Save(ctx, name, up.Content, up.Size, up.ContentType)
		if err != nil {
			a.removeImages(ctx, refs)
			return nil, fmt.Errorf("store image: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (a *App) removeImages(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := a.images.Remove(ctx, ref); err != nil {
			slog.Warn("image_cleanup_failed", "ref", ref, "error", err)
		}
	}
}
