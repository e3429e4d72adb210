package services

import (
	"context"

	"github.com/senselive/vms-api/internal/jobs"
	"github.com/senselive/vms-api/internal/models"
	"gorm.io/gorm"
)

// AuditService records who performed which workflow action. Writes go
// through the worker so a slow audit insert never delays a response.
type AuditService struct {
	db     *gorm.DB
	worker *jobs.Worker
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB, worker *jobs.Worker) *AuditService {
	return &AuditService{db: db, worker: worker}
}

// Record enqueues an audit entry for asynchronous persistence.
func (s *AuditService) Record(userID uint, action, entity, entityID, details, ip, userAgent string) {
	entry := &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	s.worker.Enqueue(func(ctx context.Context) error {
		return s.db.WithContext(ctx).Create(entry).Error
	})
}

// List retrieves audit entries, newest first.
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	if err := s.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&logs)
	return logs, total, result.Error
}
