package card

import (
	"errors"
	"time"
)

var ErrCardNotFound = errors.New("card not found")

// Grading holds the professional grading sub-record. It is only meaningful
// when the card's IsGraded flag is set.
type Grading struct {
	Company    string  `json:"company"`
	Grade      float64 `json:"grade"`
	CertNumber string  `json:"cert_number"`
}

type Card struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	Name           string    `json:"name"`
	Set            string    `json:"set"`
	CardNumber     string    `json:"card_number"`
	ImageURL       string    `json:"image_url"`
	IsGraded       bool      `json:"is_graded"`
	Grading        *Grading  `json:"grading,omitempty"`
	Condition      string    `json:"condition"`
	PurchasePrice  float64   `json:"purchase_price"`
	EstimatedValue float64   `json:"estimated_value"`
	Quantity       int       `json:"quantity"`
	Notes          string    `json:"notes"`
	Tags           []string  `json:"tags"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultCondition is applied when a card is created without one.
const DefaultCondition = "Raw"

type CreateCardParams struct {
	Name           string
	Set            string
	CardNumber     string
	ImageURL       string
	IsGraded       bool
	Grading        *Grading
	Condition      string
	PurchasePrice  float64
	EstimatedValue float64
	Quantity       *int
	Notes          string
	Tags           []string
}

func (p *CreateCardParams) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Set == "" {
		return errors.New("set is required")
	}
	if p.CardNumber == "" {
		return errors.New("card_number is required")
	}
	if p.PurchasePrice < 0 {
		return errors.New("purchase_price must not be negative")
	}
	if p.EstimatedValue < 0 {
		return errors.New("estimated_value must not be negative")
	}
	if p.Quantity != nil && *p.Quantity < 1 {
		return errors.New("quantity must be a positive integer")
	}
	if p.IsGraded && p.Grading == nil {
		return errors.New("grading is required for graded cards")
	}
	return nil
}

type UpdateCardParams struct {
	Name           *string
	Set            *string
	CardNumber     *string
	ImageURL       *string
	IsGraded       *bool
	Grading        *Grading
	Condition      *string
	PurchasePrice  *float64
	EstimatedValue *float64
	Quantity       *int
	Notes          *string
	Tags           []string
}

func (p *UpdateCardParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("name must not be empty")
	}
	if p.Set != nil && *p.Set == "" {
		return errors.New("set must not be empty")
	}
	if p.CardNumber != nil && *p.CardNumber == "" {
		return errors.New("card_number must not be empty")
	}
	if p.PurchasePrice != nil && *p.PurchasePrice < 0 {
		return errors.New("purchase_price must not be negative")
	}
	if p.EstimatedValue != nil && *p.EstimatedValue < 0 {
		return errors.New("estimated_value must not be negative")
	}
	if p.Quantity != nil && *p.Quantity < 1 {
		return errors.New("quantity must be a positive integer")
	}
	return nil
}
