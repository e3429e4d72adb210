package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/senselive/vms-api/internal/models"
	"github.com/senselive/vms-api/internal/repository"
	"gorm.io/gorm"
)

// VisitorService is the visitor registry: it deduplicates identity records
// by email or contact number and backfills missing fields on repeat visits.
type VisitorService struct {
	visitorRepo repository.VisitorRepository
}

// NewVisitorService creates a new visitor service
func NewVisitorService(visitorRepo repository.VisitorRepository) *VisitorService {
	return &VisitorService{visitorRepo: visitorRepo}
}

// Resolve returns the visitor matching the given contact info, creating one
// when no match exists. On a match, empty stored fields are backfilled from
// the incoming values; populated fields are never overwritten.
//
// The lookup and insert are not wrapped in a transaction, so two concurrent
// registrations with the same new contact can still create duplicate rows.
func (s *VisitorService) Resolve(ctx context.Context, firstName, lastName, email, contactNumber, company string) (*models.Visitor, error) {
	visitor, err := s.visitorRepo.FindByContact(ctx, email, contactNumber)
	if err == nil {
		if visitor.MergeContact(firstName, lastName, email, contactNumber, company) {
			if err := s.visitorRepo.Update(ctx, visitor); err != nil {
				return nil, err
			}
		}
		return visitor, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	visitor = &models.Visitor{
		ID:            uuid.NewString(),
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		ContactNumber: contactNumber,
		Company:       company,
	}
	if err := s.visitorRepo.Create(ctx, visitor); err != nil {
		return nil, err
	}
	return visitor, nil
}

// List returns all visitor identity records.
func (s *VisitorService) List(ctx context.Context) ([]models.Visitor, error) {
	return s.visitorRepo.List(ctx)
}
