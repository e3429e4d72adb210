package services

import (
	"github.com/senselive/vms-api/internal/config"
	"github.com/senselive/vms-api/internal/jobs"
	"github.com/senselive/vms-api/internal/repository"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth      *AuthService
	User      *UserService
	Visitor   *VisitorService
	Visit     *VisitService
	Analytics *AnalyticsService
	Export    *ExportService
	Pass      *PassService
	Audit     *AuditService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config, db *gorm.DB) *Services {
	auditSvc := NewAuditService(db, worker)
	visitorSvc := NewVisitorService(repos.Visitor)
	visitSvc := NewVisitService(repos.VisitLog, visitorSvc, auditSvc, cfg)

	return &Services{
		Auth:      NewAuthService(repos.User, repos.Department, cfg),
		User:      NewUserService(repos.User, repos.Department),
		Visitor:   visitorSvc,
		Visit:     visitSvc,
		Analytics: NewAnalyticsService(repos.Analytics),
		Export:    NewExportService(visitSvc),
		Pass:      NewPassService(visitSvc),
		Audit:     auditSvc,
	}
}
