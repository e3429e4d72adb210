package repository

import (
	"context"

	"github.com/senselive/vms-api/internal/models"
	"gorm.io/gorm"
)

// VisitorRepository defines the interface for visitor identity records
type VisitorRepository interface {
	FindByContact(ctx context.Context, email, contactNumber string) (*models.Visitor, error)
	Create(ctx context.Context, visitor *models.Visitor) error
	Update(ctx context.Context, visitor *models.Visitor) error
	List(ctx context.Context) ([]models.Visitor, error)
}

type visitorRepository struct {
	db *gorm.DB
}

// NewVisitorRepository creates a new visitor repository
func NewVisitorRepository(db *gorm.DB) VisitorRepository {
	return &visitorRepository{db: db}
}

// FindByContact returns the first visitor matching either contact field.
// The email-OR-phone match is the dedup key; first match wins.
func (r *visitorRepository) FindByContact(ctx context.Context, email, contactNumber string) (*models.Visitor, error) {
	var visitor models.Visitor
	err := r.db.WithContext(ctx).
		Where("email = ? OR contact_number = ?", email, contactNumber).
		First(&visitor).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (r *visitorRepository) Create(ctx context.Context, visitor *models.Visitor) error {
	return r.db.WithContext(ctx).Create(visitor).Error
}

func (r *visitorRepository) Update(ctx context.Context, visitor *models.Visitor) error {
	return r.db.WithContext(ctx).Save(visitor).Error
}

func (r *visitorRepository) List(ctx context.Context) ([]models.Visitor, error) {
	var visitors []models.Visitor
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&visitors).Error
	return visitors, err
}
