package services

import (
	"context"
	"errors"

	"github.com/senselive/vms-api/internal/models"
	"github.com/senselive/vms-api/internal/repository"
	"gorm.io/gorm"
)

// UserService serves the org-wide staff and department views.
type UserService struct {
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, departmentRepo repository.DepartmentRepository) *UserService {
	return &UserService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
	}
}

// FindByID returns one staff account.
func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns staff accounts, optionally filtered by department.
func (s *UserService) ListUsers(ctx context.Context, departmentID uint) ([]models.UserResponse, error) {
	users, err := s.userRepo.List(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses, nil
}

// ListDepartments returns all departments, name-ordered.
func (s *UserService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return s.departmentRepo.List(ctx)
}
