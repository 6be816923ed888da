package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cardvault/internal/domain/binder"
	"cardvault/internal/shared/middleware"
)

type BinderHandler struct {
	binders *binder.Service
}

func NewBinderHandler(binders *binder.Service) *BinderHandler {
	return &BinderHandler{binders: binders}
}

// Request DTOs

type CreateBinderRequest struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

type UpdateBinderRequest struct {
	Name    *string      `json:"name,omitempty"`
	Rows    *int         `json:"rows,omitempty"`
	Columns *int         `json:"columns,omitempty"`
	Slots   binder.Slots `json:"slots,omitempty"`
}

// HandleBinders routes collection-level requests based on method.
func (h *BinderHandler) HandleBinders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListBinders(w, r)
	case http.MethodPost:
		h.handleCreateBinder(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleBinderByID routes requests for a specific binder.
func (h *BinderHandler) HandleBinderByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetBinder(w, r)
	case http.MethodPut:
		h.handleUpdateBinder(w, r)
	case http.MethodDelete:
		h.handleDeleteBinder(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *BinderHandler) handleListBinders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	binders, err := h.binders.ListByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing binders for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch binders")
		return
	}

	if binders == nil {
		binders = []*binder.Binder{}
	}

	writeJSON(w, http.StatusOK, map[string][]*binder.Binder{"binders": binders})
}

func (h *BinderHandler) handleGetBinder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	binderID, ok := pathID(w, r, "Invalid binder ID")
	if !ok {
		return
	}

	b, err := h.binders.GetByID(r.Context(), userID, binderID)
	if err != nil {
		if errors.Is(err, binder.ErrBinderNotFound) {
			writeError(w, http.StatusNotFound, "Binder not found")
			return
		}
		log.Printf("Error getting binder %s: %v", binderID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch binder")
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (h *BinderHandler) handleCreateBinder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateBinderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := binder.CreateBinderParams{
		Name:    req.Name,
		Rows:    req.Rows,
		Columns: req.Columns,
	}

	if err := params.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.binders.Create(r.Context(), userID, params)
	if err != nil {
		log.Printf("Error creating binder for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to create binder")
		return
	}

	log.Printf("Binder created: %s by user %s", b.Name, userID)
	writeJSON(w, http.StatusCreated, b)
}

func (h *BinderHandler) handleUpdateBinder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	binderID, ok := pathID(w, r, "Invalid binder ID")
	if !ok {
		return
	}

	var req UpdateBinderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := binder.UpdateBinderParams{
		Name:    req.Name,
		Rows:    req.Rows,
		Columns: req.Columns,
		Slots:   req.Slots,
	}

	if err := params.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.binders.Update(r.Context(), userID, binderID, params)
	if err != nil {
		switch {
		case errors.Is(err, binder.ErrBinderNotFound):
			writeError(w, http.StatusNotFound, "Binder not found")
		case errors.Is(err, binder.ErrInvalidSlots):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error updating binder %s: %v", binderID, err)
			writeError(w, http.StatusInternalServerError, "Failed to update binder")
		}
		return
	}

	log.Printf("Binder updated: %s by user %s", binderID, userID)
	writeJSON(w, http.StatusOK, b)
}

func (h *BinderHandler) handleDeleteBinder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	binderID, ok := pathID(w, r, "Invalid binder ID")
	if !ok {
		return
	}

	if err := h.binders.Delete(r.Context(), userID, binderID); err != nil {
		if errors.Is(err, binder.ErrBinderNotFound) {
			writeError(w, http.StatusNotFound, "Binder not found")
			return
		}
		log.Printf("Error deleting binder %s: %v", binderID, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete binder")
		return
	}

	log.Printf("Binder deleted: %s by user %s", binderID, userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Binder deleted successfully"})
}
