package repository

import (
	"context"
	"time"

	"github.com/senselive/vms-api/internal/models"
	"gorm.io/gorm"
)

// VisitLogRepository defines the interface for visit log data access. Every
// workflow transition persists as a single-row update of only the columns it
// touched; there is no optimistic-concurrency token, so concurrent writers
// on the same row race last-writer-wins.
type VisitLogRepository interface {
	Create(ctx context.Context, log *models.VisitLog) error
	FindByID(ctx context.Context, id string) (*models.VisitLog, error)
	FindByIDFull(ctx context.Context, id string) (*models.VisitLog, error)
	UpdateColumns(ctx context.Context, log *models.VisitLog, columns ...string) error
	ListAll(ctx context.Context) ([]models.VisitLog, error)
	ListByDepartment(ctx context.Context, departmentID uint) ([]models.VisitLog, error)
	ListPendingManager(ctx context.Context, hostUserID uint) ([]models.VisitLog, error)
	ListSecurityPending(ctx context.Context) ([]models.VisitLog, error)
	ListProcessed(ctx context.Context, start, end time.Time) ([]models.VisitLog, error)
}

type visitLogRepository struct {
	db *gorm.DB
}

// NewVisitLogRepository creates a new visit log repository
func NewVisitLogRepository(db *gorm.DB) VisitLogRepository {
	return &visitLogRepository{db: db}
}

func (r *visitLogRepository) Create(ctx context.Context, log *models.VisitLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *visitLogRepository) FindByID(ctx context.Context, id string) (*models.VisitLog, error) {
	var log models.VisitLog
	err := r.db.WithContext(ctx).
		Where("visit_id = ?", id).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *visitLogRepository) FindByIDFull(ctx context.Context, id string) (*models.VisitLog, error) {
	var log models.VisitLog
	err := r.db.WithContext(ctx).
		Preload("Visitor").
		Preload("Department").
		Preload("Host").
		Where("visit_id = ?", id).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// UpdateColumns writes only the named columns of the given row. Selected
// fields are written even when zero, so an Unset gate persists as NULL.
func (r *visitLogRepository) UpdateColumns(ctx context.Context, log *models.VisitLog, columns ...string) error {
	return r.db.WithContext(ctx).
		Model(log).
		Select(columns).
		Updates(log).Error
}

func (r *visitLogRepository) ListAll(ctx context.Context) ([]models.VisitLog, error) {
	var logs []models.VisitLog
	err := r.withAssociations(ctx).
		Order("visit_date DESC").
		Find(&logs).Error
	return logs, err
}

func (r *visitLogRepository) ListByDepartment(ctx context.Context, departmentID uint) ([]models.VisitLog, error) {
	var logs []models.VisitLog
	err := r.withAssociations(ctx).
		Where("department_id = ?", departmentID).
		Order("visit_date DESC").
		Find(&logs).Error
	return logs, err
}

// ListPendingManager returns walk-in visits still waiting for the host
// manager's decision.
func (r *visitLogRepository) ListPendingManager(ctx context.Context, hostUserID uint) ([]models.VisitLog, error) {
	var logs []models.VisitLog
	err := r.withAssociations(ctx).
		Where("manager_approval IS NULL AND visiting_user_id = ?", hostUserID).
		Order("visit_date DESC").
		Find(&logs).Error
	return logs, err
}

// ListSecurityPending returns manager-approved visits awaiting security.
func (r *visitLogRepository) ListSecurityPending(ctx context.Context) ([]models.VisitLog, error) {
	var logs []models.VisitLog
	err := r.withAssociations(ctx).
		Where("manager_approval = TRUE AND security_approval IS NULL").
		Order("visit_date DESC").
		Find(&logs).Error
	return logs, err
}

// ListProcessed returns fully approved, checked-out visits in a date range.
func (r *visitLogRepository) ListProcessed(ctx context.Context, start, end time.Time) ([]models.VisitLog, error) {
	var logs []models.VisitLog
	err := r.withAssociations(ctx).
		Where("visit_date BETWEEN ? AND ?", start, end).
		Where("manager_approval = TRUE AND security_approval = TRUE").
		Where("check_out_time IS NOT NULL").
		Order("visit_date DESC, check_out_time DESC").
		Find(&logs).Error
	return logs, err
}

func (r *visitLogRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Visitor").
		Preload("Department").
		Preload("Host")
}
