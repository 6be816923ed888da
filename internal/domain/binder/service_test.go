package binder

import (
	"context"
	"errors"
	"testing"

	"cardvault/internal/domain/card"
)

// MockBinderRepo implements Repository for testing
type MockBinderRepo struct {
	CreateFunc       func(ctx context.Context, userID string, params CreateBinderParams) (*Binder, error)
	GetByIDFunc      func(ctx context.Context, userID, id string) (*Binder, error)
	ListByUserIDFunc func(ctx context.Context, userID string) ([]*Binder, error)
	UpdateFunc       func(ctx context.Context, userID, id string, params UpdateBinderParams) (*Binder, error)
	DeleteFunc       func(ctx context.Context, userID, id string) error
}

func (m *MockBinderRepo) Create(ctx context.Context, userID string, params CreateBinderParams) (*Binder, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockBinderRepo) GetByID(ctx context.Context, userID, id string) (*Binder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockBinderRepo) ListByUserID(ctx context.Context, userID string) ([]*Binder, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBinderRepo) Update(ctx context.Context, userID, id string, params UpdateBinderParams) (*Binder, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockBinderRepo) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

// MockCardRepo implements card.Repository for testing
type MockCardRepo struct {
	CreateFunc       func(ctx context.Context, userID string, params card.CreateCardParams) (*card.Card, error)
	GetByIDFunc      func(ctx context.Context, userID, id string) (*card.Card, error)
	ListByUserIDFunc func(ctx context.Context, userID string) ([]*card.Card, error)
	UpdateFunc       func(ctx context.Context, userID, id string, params card.UpdateCardParams) (*card.Card, error)
	DeleteFunc       func(ctx context.Context, userID, id string) error
}

func (m *MockCardRepo) Create(ctx context.Context, userID string, params card.CreateCardParams) (*card.Card, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockCardRepo) GetByID(ctx context.Context, userID, id string) (*card.Card, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockCardRepo) ListByUserID(ctx context.Context, userID string) ([]*card.Card, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCardRepo) Update(ctx context.Context, userID, id string, params card.UpdateCardParams) (*card.Card, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockCardRepo) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

const testUserID = "user-1"

func TestService_Create(t *testing.T) {
	binderRepo := &MockBinderRepo{
		CreateFunc: func(ctx context.Context, userID string, params CreateBinderParams) (*Binder, error) {
			return &Binder{
				ID:      "binder-1",
				UserID:  userID,
				Name:    params.Name,
				Rows:    params.Rows,
				Columns: params.Columns,
				Slots:   NewSlots(params.Rows, params.Columns),
			}, nil
		},
	}
	svc := NewService(binderRepo, &MockCardRepo{})

	b, err := svc.Create(context.Background(), testUserID, CreateBinderParams{Name: "Favorites", Rows: 3, Columns: 3})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := b.Slots.ValidateShape(3, 3); err != nil {
		t.Errorf("Create() returned binder with invalid grid: %v", err)
	}
}

func TestService_Create_InvalidParams(t *testing.T) {
	svc := NewService(&MockBinderRepo{}, &MockCardRepo{})

	_, err := svc.Create(context.Background(), testUserID, CreateBinderParams{Name: "", Rows: 3, Columns: 3})
	if err == nil {
		t.Fatal("Create() accepted empty name")
	}
}

func TestService_Update_NewReferenceChecked(t *testing.T) {
	existing := &Binder{
		ID:      "binder-1",
		UserID:  testUserID,
		Name:    "Favorites",
		Rows:    2,
		Columns: 2,
		Slots:   NewSlots(2, 2),
	}

	var checkedIDs []string
	cardRepo := &MockCardRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*card.Card, error) {
			checkedIDs = append(checkedIDs, id)
			if id == "owned-card" {
				return &card.Card{ID: id, UserID: userID}, nil
			}
			return nil, card.ErrCardNotFound
		},
	}
	binderRepo := &MockBinderRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Binder, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, userID, id string, params UpdateBinderParams) (*Binder, error) {
			updated := *existing
			updated.Slots = params.Slots
			return &updated, nil
		},
	}
	svc := NewService(binderRepo, cardRepo)

	slots := NewSlots(2, 2)
	slots[0][0] = strPtr("owned-card")

	b, err := svc.Update(context.Background(), testUserID, "binder-1", UpdateBinderParams{Slots: slots})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if len(checkedIDs) != 1 || checkedIDs[0] != "owned-card" {
		t.Errorf("Update() checked %v, want [owned-card]", checkedIDs)
	}
	if b.Slots[0][0] == nil || *b.Slots[0][0] != "owned-card" {
		t.Error("Update() did not persist the new slot reference")
	}
}

func TestService_Update_UnknownReferenceRejected(t *testing.T) {
	binderRepo := &MockBinderRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Binder, error) {
			return &Binder{ID: id, UserID: userID, Rows: 1, Columns: 1, Slots: NewSlots(1, 1)}, nil
		},
		UpdateFunc: func(ctx context.Context, userID, id string, params UpdateBinderParams) (*Binder, error) {
			t.Error("repository Update should not be reached with an unknown reference")
			return nil, nil
		},
	}
	cardRepo := &MockCardRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*card.Card, error) {
			return nil, card.ErrCardNotFound
		},
	}
	svc := NewService(binderRepo, cardRepo)

	slots := NewSlots(1, 1)
	slots[0][0] = strPtr("missing-card")

	_, err := svc.Update(context.Background(), testUserID, "binder-1", UpdateBinderParams{Slots: slots})
	if !errors.Is(err, ErrInvalidSlots) {
		t.Errorf("Update() error = %v, want ErrInvalidSlots", err)
	}
}

func TestService_Update_StaleReferenceExempt(t *testing.T) {
	// The stored grid already references a card that no longer exists.
	// Writing it back unchanged must not fail; only the new id is checked.
	stale := NewSlots(1, 2)
	stale[0][0] = strPtr("deleted-card")

	binderRepo := &MockBinderRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Binder, error) {
			return &Binder{ID: id, UserID: userID, Rows: 1, Columns: 2, Slots: stale}, nil
		},
		UpdateFunc: func(ctx context.Context, userID, id string, params UpdateBinderParams) (*Binder, error) {
			return &Binder{ID: id, UserID: userID, Rows: 1, Columns: 2, Slots: params.Slots}, nil
		},
	}

	var checkedIDs []string
	cardRepo := &MockCardRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*card.Card, error) {
			checkedIDs = append(checkedIDs, id)
			if id == "deleted-card" {
				return nil, card.ErrCardNotFound
			}
			return &card.Card{ID: id, UserID: userID}, nil
		},
	}
	svc := NewService(binderRepo, cardRepo)

	slots := NewSlots(1, 2)
	slots[0][0] = strPtr("deleted-card")
	slots[0][1] = strPtr("new-card")

	_, err := svc.Update(context.Background(), testUserID, "binder-1", UpdateBinderParams{Slots: slots})
	if err != nil {
		t.Fatalf("Update() failed on stale reference: %v", err)
	}
	if len(checkedIDs) != 1 || checkedIDs[0] != "new-card" {
		t.Errorf("Update() checked %v, want only [new-card]", checkedIDs)
	}
}

func TestService_Update_ShapeMismatchRejected(t *testing.T) {
	binderRepo := &MockBinderRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Binder, error) {
			return &Binder{ID: id, UserID: userID, Rows: 3, Columns: 3, Slots: NewSlots(3, 3)}, nil
		},
	}
	svc := NewService(binderRepo, &MockCardRepo{})

	_, err := svc.Update(context.Background(), testUserID, "binder-1", UpdateBinderParams{Slots: NewSlots(2, 2)})
	if !errors.Is(err, ErrInvalidSlots) {
		t.Errorf("Update() error = %v, want ErrInvalidSlots", err)
	}
}

func TestService_Update_ShapeValidatedAgainstNewDimensions(t *testing.T) {
	binderRepo := &MockBinderRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Binder, error) {
			return &Binder{ID: id, UserID: userID, Rows: 3, Columns: 3, Slots: NewSlots(3, 3)}, nil
		},
		UpdateFunc: func(ctx context.Context, userID, id string, params UpdateBinderParams) (*Binder, error) {
			return &Binder{ID: id, UserID: userID, Rows: *params.Rows, Columns: *params.Columns, Slots: params.Slots}, nil
		},
	}
	svc := NewService(binderRepo, &MockCardRepo{})

	// Grid shaped for the new dimensions, not the stored ones
	rows, columns := 2, 4
	_, err := svc.Update(context.Background(), testUserID, "binder-1", UpdateBinderParams{
		Rows:    &rows,
		Columns: &columns,
		Slots:   NewSlots(2, 4),
	})
	if err != nil {
		t.Fatalf("Update() rejected grid matching the new dimensions: %v", err)
	}
}

func TestService_Update_ResizesWhenDimensionsChangeWithoutSlots(t *testing.T) {
	stored := NewSlots(2, 2)
	stored[0][0] = strPtr("keep")
	stored[1][1] = strPtr("drop")

	var persisted UpdateBinderParams
	binderRepo := &MockBinderRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Binder, error) {
			return &Binder{ID: id, UserID: userID, Rows: 2, Columns: 2, Slots: stored}, nil
		},
		UpdateFunc: func(ctx context.Context, userID, id string, params UpdateBinderParams) (*Binder, error) {
			persisted = params
			return &Binder{ID: id, UserID: userID, Rows: *params.Rows, Columns: 2, Slots: params.Slots}, nil
		},
	}
	svc := NewService(binderRepo, &MockCardRepo{})

	rows := 1
	_, err := svc.Update(context.Background(), testUserID, "binder-1", UpdateBinderParams{Rows: &rows})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if persisted.Slots == nil {
		t.Fatal("Update() did not resize the stored grid")
	}
	if err := persisted.Slots.ValidateShape(1, 2); err != nil {
		t.Errorf("resized grid has wrong shape: %v", err)
	}
	if persisted.Slots[0][0] == nil || *persisted.Slots[0][0] != "keep" {
		t.Error("resize lost a cell that still fits")
	}
}

func TestService_Update_BinderNotFound(t *testing.T) {
	binderRepo := &MockBinderRepo{
		GetByIDFunc: func(ctx context.Context, userID, id string) (*Binder, error) {
			return nil, ErrBinderNotFound
		},
	}
	svc := NewService(binderRepo, &MockCardRepo{})

	_, err := svc.Update(context.Background(), testUserID, "nope", UpdateBinderParams{})
	if !errors.Is(err, ErrBinderNotFound) {
		t.Errorf("Update() error = %v, want ErrBinderNotFound", err)
	}
}
