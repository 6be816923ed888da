package binder

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBinderNotFound = errors.New("binder not found")
	ErrInvalidSlots   = errors.New("invalid slots")
)

// Slots is the binder's grid. Each cell is either nil (empty) or the id of a
// card owned by the binder's owner. Cells may keep referencing cards that
// were deleted later; such stale references are returned verbatim on read.
type Slots [][]*string

// NewSlots allocates an all-empty rows×columns grid.
func NewSlots(rows, columns int) Slots {
	s := make(Slots, rows)
	for i := range s {
		s[i] = make([]*string, columns)
	}
	return s
}

// ValidateShape checks the grid is exactly rows×columns.
func (s Slots) ValidateShape(rows, columns int) error {
	if len(s) != rows {
		return fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidSlots, rows, len(s))
	}
	for i, row := range s {
		if len(row) != columns {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidSlots, i, len(row), columns)
		}
	}
	return nil
}

// CardIDs returns the distinct card ids referenced by non-empty cells.
func (s Slots) CardIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, row := range s {
		for _, cell := range row {
			if cell != nil && *cell != "" {
				ids[*cell] = true
			}
		}
	}
	return ids
}

// Resize returns a rows×columns grid carrying over every cell that still
// fits inside the new shape.
func (s Slots) Resize(rows, columns int) Slots {
	resized := NewSlots(rows, columns)
	for i := 0; i < rows && i < len(s); i++ {
		for j := 0; j < columns && j < len(s[i]); j++ {
			resized[i][j] = s[i][j]
		}
	}
	return resized
}

type Binder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	Slots     Slots     `json:"slots"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const maxGridDimension = 100

type CreateBinderParams struct {
	Name    string
	Rows    int
	Columns int
}

func (p *CreateBinderParams) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Rows < 1 {
		return errors.New("rows must be a positive integer")
	}
	if p.Columns < 1 {
		return errors.New("columns must be a positive integer")
	}
	if p.Rows > maxGridDimension || p.Columns > maxGridDimension {
		return fmt.Errorf("rows and columns must be %d or less", maxGridDimension)
	}
	return nil
}

type UpdateBinderParams struct {
	Name    *string
	Rows    *int
	Columns *int
	Slots   Slots
}

func (p *UpdateBinderParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("name must not be empty")
	}
	if p.Rows != nil && (*p.Rows < 1 || *p.Rows > maxGridDimension) {
		return fmt.Errorf("rows must be between 1 and %d", maxGridDimension)
	}
	if p.Columns != nil && (*p.Columns < 1 || *p.Columns > maxGridDimension) {
		return fmt.Errorf("columns must be between 1 and %d", maxGridDimension)
	}
	return nil
}
