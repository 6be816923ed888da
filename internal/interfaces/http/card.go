package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"cardvault/internal/domain/card"
	"cardvault/internal/shared/middleware"
)

type CardHandler struct {
	cardRepo card.Repository
}

func NewCardHandler(cardRepo card.Repository) *CardHandler {
	return &CardHandler{cardRepo: cardRepo}
}

// Request DTOs

type CreateCardRequest struct {
	Name           string        `json:"name"`
	Set            string        `json:"set"`
	CardNumber     string        `json:"card_number"`
	ImageURL       string        `json:"image_url"`
	IsGraded       bool          `json:"is_graded"`
	Grading        *card.Grading `json:"grading,omitempty"`
	Condition      string        `json:"condition"`
	PurchasePrice  float64       `json:"purchase_price"`
	EstimatedValue float64       `json:"estimated_value"`
	Quantity       *int          `json:"quantity,omitempty"`
	Notes          string        `json:"notes"`
	Tags           []string      `json:"tags"`
}

type UpdateCardRequest struct {
	Name           *string       `json:"name,omitempty"`
	Set            *string       `json:"set,omitempty"`
	CardNumber     *string       `json:"card_number,omitempty"`
	ImageURL       *string       `json:"image_url,omitempty"`
	IsGraded       *bool         `json:"is_graded,omitempty"`
	Grading        *card.Grading `json:"grading,omitempty"`
	Condition      *string       `json:"condition,omitempty"`
	PurchasePrice  *float64      `json:"purchase_price,omitempty"`
	EstimatedValue *float64      `json:"estimated_value,omitempty"`
	Quantity       *int          `json:"quantity,omitempty"`
	Notes          *string       `json:"notes,omitempty"`
	Tags           []string      `json:"tags,omitempty"`
}

// HandleCards routes collection-level requests based on method.
func (h *CardHandler) HandleCards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListCards(w, r)
	case http.MethodPost:
		h.handleCreateCard(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleCardByID routes requests for a specific card.
func (h *CardHandler) HandleCardByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetCard(w, r)
	case http.MethodPut:
		h.handleUpdateCard(w, r)
	case http.MethodDelete:
		h.handleDeleteCard(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *CardHandler) handleListCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cards, err := h.cardRepo.ListByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing cards for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch cards")
		return
	}

	if cards == nil {
		cards = []*card.Card{}
	}

	writeJSON(w, http.StatusOK, map[string][]*card.Card{"cards": cards})
}

func (h *CardHandler) handleGetCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cardID, ok := pathID(w, r, "Invalid card ID")
	if !ok {
		return
	}

	c, err := h.cardRepo.GetByID(r.Context(), userID, cardID)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			writeError(w, http.StatusNotFound, "Card not found")
			return
		}
		log.Printf("Error getting card %s: %v", cardID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch card")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CardHandler) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := card.CreateCardParams{
		Name:           req.Name,
		Set:            req.Set,
		CardNumber:     req.CardNumber,
		ImageURL:       req.ImageURL,
		IsGraded:       req.IsGraded,
		Grading:        req.Grading,
		Condition:      req.Condition,
		PurchasePrice:  req.PurchasePrice,
		EstimatedValue: req.EstimatedValue,
		Quantity:       req.Quantity,
		Notes:          req.Notes,
		Tags:           req.Tags,
	}

	if err := params.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.cardRepo.Create(r.Context(), userID, params)
	if err != nil {
		log.Printf("Error creating card for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to create card")
		return
	}

	log.Printf("Card created: %s by user %s", c.Name, userID)
	writeJSON(w, http.StatusCreated, c)
}

func (h *CardHandler) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cardID, ok := pathID(w, r, "Invalid card ID")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := card.UpdateCardParams{
		Name:           req.Name,
		Set:            req.Set,
		CardNumber:     req.CardNumber,
		ImageURL:       req.ImageURL,
		IsGraded:       req.IsGraded,
		Grading:        req.Grading,
		Condition:      req.Condition,
		PurchasePrice:  req.PurchasePrice,
		EstimatedValue: req.EstimatedValue,
		Quantity:       req.Quantity,
		Notes:          req.Notes,
		Tags:           req.Tags,
	}

	if err := params.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.cardRepo.Update(r.Context(), userID, cardID, params)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			writeError(w, http.StatusNotFound, "Card not found")
			return
		}
		log.Printf("Error updating card %s: %v", cardID, err)
		writeError(w, http.StatusInternalServerError, "Failed to update card")
		return
	}

	log.Printf("Card updated: %s by user %s", cardID, userID)
	writeJSON(w, http.StatusOK, c)
}

func (h *CardHandler) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cardID, ok := pathID(w, r, "Invalid card ID")
	if !ok {
		return
	}

	if err := h.cardRepo.Delete(r.Context(), userID, cardID); err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			writeError(w, http.StatusNotFound, "Card not found")
			return
		}
		log.Printf("Error deleting card %s: %v", cardID, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete card")
		return
	}

	log.Printf("Card deleted: %s by user %s", cardID, userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Card deleted successfully"})
}

// pathID extracts and validates the {id} path segment. Identifiers are
// opaque to clients but are UUIDs internally, so anything else is rejected
// before touching the store.
func pathID(w http.ResponseWriter, r *http.Request, invalidMsg string) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, invalidMsg)
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, invalidMsg)
		return "", false
	}
	return id, true
}
