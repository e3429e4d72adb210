package services

import (
	"context"
	"errors"
	"testing"

	"github.com/senselive/vms-api/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Mock VisitorRepository
type mockVisitorRepository struct {
	mockFindByContact func(ctx context.Context, email, contactNumber string) (*models.Visitor, error)
	mockCreate        func(ctx context.Context, visitor *models.Visitor) error
	mockUpdate        func(ctx context.Context, visitor *models.Visitor) error
	mockList          func(ctx context.Context) ([]models.Visitor, error)
}

func (m *mockVisitorRepository) FindByContact(ctx context.Context, email, contactNumber string) (*models.Visitor, error) {
	if m.mockFindByContact != nil {
		return m.mockFindByContact(ctx, email, contactNumber)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepository) Create(ctx context.Context, visitor *models.Visitor) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, visitor)
	}
	return nil
}

func (m *mockVisitorRepository) Update(ctx context.Context, visitor *models.Visitor) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, visitor)
	}
	return nil
}

func (m *mockVisitorRepository) List(ctx context.Context) ([]models.Visitor, error) {
	if m.mockList != nil {
		return m.mockList(ctx)
	}
	return nil, nil
}

func TestResolveCreatesNewVisitor(t *testing.T) {
	var created *models.Visitor
	repo := &mockVisitorRepository{
		mockCreate: func(ctx context.Context, visitor *models.Visitor) error {
			created = visitor
			return nil
		},
	}
	svc := NewVisitorService(repo)

	visitor, err := svc.Resolve(context.Background(), "Asha", "Verma", "asha@example.com", "9876543210", "Acme")
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotEmpty(t, visitor.ID)
	assert.Equal(t, "asha@example.com", visitor.Email)
	assert.Equal(t, "9876543210", visitor.ContactNumber)
}

func TestResolveReusesExistingRecord(t *testing.T) {
	existing := &models.Visitor{
		ID:            "visitor-1",
		FirstName:     "Asha",
		Email:         "asha@example.com",
		ContactNumber: "9876543210",
		Company:       "Acme",
	}

	createCalled := false
	repo := &mockVisitorRepository{
		mockFindByContact: func(ctx context.Context, email, contactNumber string) (*models.Visitor, error) {
			return existing, nil
		},
		mockCreate: func(ctx context.Context, visitor *models.Visitor) error {
			createCalled = true
			return nil
		},
	}
	svc := NewVisitorService(repo)

	// Same email, different phone: same person, same row.
	visitor, err := svc.Resolve(context.Background(), "Asha", "", "asha@example.com", "1112223333", "")
	assert.NoError(t, err)
	assert.Equal(t, "visitor-1", visitor.ID)
	assert.False(t, createCalled)
	assert.Equal(t, "9876543210", visitor.ContactNumber, "populated fields are never overwritten")
}

func TestResolveBackfillsBlankFields(t *testing.T) {
	existing := &models.Visitor{
		ID:    "visitor-1",
		Email: "asha@example.com",
	}

	var updated *models.Visitor
	repo := &mockVisitorRepository{
		mockFindByContact: func(ctx context.Context, email, contactNumber string) (*models.Visitor, error) {
			return existing, nil
		},
		mockUpdate: func(ctx context.Context, visitor *models.Visitor) error {
			updated = visitor
			return nil
		},
	}
	svc := NewVisitorService(repo)

	visitor, err := svc.Resolve(context.Background(), "Asha", "Verma", "asha@example.com", "9876543210", "Acme")
	assert.NoError(t, err)
	assert.NotNil(t, updated, "backfill merge persists the record")
	assert.Equal(t, "visitor-1", visitor.ID)
	assert.Equal(t, "Asha", visitor.FirstName)
	assert.Equal(t, "9876543210", visitor.ContactNumber)
	assert.Equal(t, "Acme", visitor.Company)
}

func TestResolvePropagatesLookupError(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &mockVisitorRepository{
		mockFindByContact: func(ctx context.Context, email, contactNumber string) (*models.Visitor, error) {
			return nil, boom
		},
	}
	svc := NewVisitorService(repo)

	_, err := svc.Resolve(context.Background(), "Asha", "", "asha@example.com", "", "")
	assert.ErrorIs(t, err, boom)
}
