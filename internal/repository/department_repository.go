package repository

import (
	"context"

	"github.com/senselive/vms-api/internal/models"
	"gorm.io/gorm"
)

// DepartmentRepository defines the interface for department reference data
type DepartmentRepository interface {
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]models.Department, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Department{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *departmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := r.db.WithContext(ctx).
		Order("department_name ASC").
		Find(&departments).Error
	return departments, err
}
