package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"printerstore/internal/app"
	"printerstore/pkg/domain"
	"printerstore/pkg/store"
)

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListProducts(w, r)
	case http.MethodPost:
		user, ok := s.requireAdmin(w, r)
		if !ok {
			return
		}
		s.handleCreateProduct(w, r, user)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	filter := store.ProductFilter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
	}
	products, err := s.app.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request, user domain.User) {
	input, uploads, cleanup, ok := s.parseProductForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	product, err := s.app.CreateProduct(r.Context(), input, uploads)
	if err != nil {
		writeCatalogError(w, err, "Failed to add product")
		return
	}
	s.audit(r, "product.create", "success", "user_id", user.ID, "product_id", product.ID)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      product.ID,
		"message": "Product added successfully",
		"product": product,
	})
}

// handleProductByID dispatches /api/products/{id} and its subpaths
// (/images/{imageId}, /main-image).
func (s *Server) handleProductByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/products/"), "/")
	parts := strings.Split(rest, "/")
	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	productID := uint(id)

	switch {
	case len(parts) == 1:
		s.handleProduct(w, r, productID)
	case len(parts) == 2 && parts[1] == "main-image":
		s.handleSetMainImage(w, r, productID)
	case len(parts) == 3 && parts[1] == "images":
		imageID, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil || imageID == 0 {
			writeError(w, http.StatusNotFound, "Image not found")
			return
		}
		s.handleDeleteProductImage(w, r, productID, uint(imageID))
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request, id uint) {
	switch r.Method {
	case http.MethodGet:
		product, err := s.app.GetProduct(id)
		if err != nil {
			writeCatalogError(w, err, "Failed to fetch product")
			return
		}
		writeJSON(w, http.StatusOK, product)
	case http.MethodPut:
		user, ok := s.requireAdmin(w, r)
		if !ok {
			return
		}
		s.handleUpdateProduct(w, r, user, id)
	case http.MethodDelete:
		user, ok := s.requireAdmin(w, r)
		if !ok {
			return
		}
		if err := s.app.DeleteProduct(r.Context(), id); err != nil {
			writeCatalogError(w, err, "Failed to delete product")
			return
		}
		s.audit(r, "product.delete", "success", "user_id", user.ID, "product_id", id)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request, user domain.User, id uint) {
	input, uploads, cleanup, ok := s.parseProductForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	keepExisting := r.FormValue("keepExistingImages") == "true"
	if err := s.app.UpdateProduct(r.Context(), id, input, uploads, keepExisting); err != nil {
		writeCatalogError(w, err, "Failed to update product")
		return
	}
	s.audit(r, "product.update", "success", "user_id", user.ID, "product_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product updated successfully"})
}

func (s *Server) handleSetMainImage(w http.ResponseWriter, r *http.Request, id uint) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req struct {
		ImagePath string `json:"imagePath"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.app.SetMainImage(r.Context(), id, req.ImagePath); err != nil {
		writeCatalogError(w, err, "Failed to update main image")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Main image updated successfully"})
}

func (s *Server) handleDeleteProductImage(w http.ResponseWriter, r *http.Request, productID, imageID uint) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if err := s.app.DeleteProductImage(r.Context(), productID, imageID); err != nil {
		writeCatalogError(w, err, "Failed to delete image")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Image deleted successfully"})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	categories, err := s.app.ListCategories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// requireAdmin authorizes the request and checks the admin role,
// writing the error response itself on failure.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	user, ok := s.authorize(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return domain.User{}, false
	}
	if user.Role != domain.RoleAdmin {
		s.audit(r, "admin.authorize", "fail", "user_id", user.ID, "reason", "forbidden")
		writeError(w, http.StatusForbidden, "Admin access required")
		return domain.User{}, false
	}
	return user, true
}

// parseProductForm reads the multipart product form shared by create and
// update. The returned cleanup closes the opened upload files.
func (s *Server) parseProductForm(w http.ResponseWriter, r *http.Request) (app.ProductInput, []app.Upload, func(), bool) {
	requestCap := s.maxUploadBytes*int64(s.maxUploadFiles) + 10*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, requestCap)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return app.ProductInput{}, nil, nil, false
	}

	input := app.ProductInput{
		Name:         r.FormValue("name"),
		Brand:        r.FormValue("brand"),
		Series:       r.FormValue("series"),
		Model:        r.FormValue("model"),
		SerialNumber: r.FormValue("serialNumber"),
		Description:  r.FormValue("description"),
		Warranty:     r.FormValue("warranty"),
		Type:         r.FormValue("type"),
		Categories:   r.MultipartForm.Value["categories"],
	}
	var ok bool
	if input.DealerPrice, ok = parsePrice(w, "dealerPrice", r.FormValue("dealerPrice")); !ok {
		return app.ProductInput{}, nil, nil, false
	}
	if input.EndUserPrice, ok = parsePrice(w, "endUserPrice", r.FormValue("endUserPrice")); !ok {
		return app.ProductInput{}, nil, nil, false
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) > s.maxUploadFiles {
		writeError(w, http.StatusBadRequest, "too many image files")
		return app.ProductInput{}, nil, nil, false
	}

	uploads := make([]app.Upload, 0, len(headers))
	closers := make([]io.Closer, 0, len(headers))
	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
	for _, header := range headers {
		if !s.isExtensionAllowed(header.Filename) {
			cleanup()
			writeError(w, http.StatusBadRequest, "unsupported image type")
			return app.ProductInput{}, nil, nil, false
		}
		if header.Size > s.maxUploadBytes {
			cleanup()
			writeError(w, http.StatusBadRequest, "image file too large")
			return app.ProductInput{}, nil, nil, false
		}
		file, err := header.Open()
		if err != nil {
			cleanup()
			writeError(w, http.StatusBadRequest, "invalid form data")
			return app.ProductInput{}, nil, nil, false
		}
		closers = append(closers, file)
		uploads = append(uploads, app.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		})
	}
	return input, uploads, cleanup, true
}

func parsePrice(w http.ResponseWriter, field, raw string) (*float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		writeError(w, http.StatusBadRequest, "invalid "+field)
		return nil, false
	}
	return &value, true
}

func writeCatalogError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrBrandRequired),
		errors.Is(err, app.ErrImagePathRequired),
		errors.Is(err, app.ErrSerialNumberTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrProductNotFound),
		errors.Is(err, app.ErrImageNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
