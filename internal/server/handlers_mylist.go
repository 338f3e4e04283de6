package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"printerstore/internal/app"
	"printerstore/pkg/domain"
)

func (s *Server) handleMyList(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		products, err := s.app.MyList(user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch list")
			return
		}
		writeJSON(w, http.StatusOK, products)
	case http.MethodPost:
		var req struct {
			ProductID uint `json:"productId"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := s.app.AddToList(user.ID, req.ProductID); err != nil {
			writeListError(w, err, "Failed to add to list")
			return
		}
		s.audit(r, "mylist.add", "success", "user_id", user.ID, "product_id", req.ProductID)
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Product added to list"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleMyListItem(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	productID, ok := pathID(r, "/api/mylist/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := s.app.RemoveFromList(user.ID, productID); err != nil {
		writeListError(w, err, "Failed to remove from list")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product removed from list"})
}

func (s *Server) handleSendList(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if _, err := s.app.SendList(r.Context(), user); err != nil {
		writeListError(w, err, "Failed to send list")
		return
	}
	s.audit(r, "mylist.send", "success", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "List sent successfully"})
}

func writeListError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrAlreadyInList), errors.Is(err, app.ErrListEmpty):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrProductNotFound), errors.Is(err, app.ErrNotInList):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
