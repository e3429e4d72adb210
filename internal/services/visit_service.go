package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/senselive/vms-api/internal/config"
	"github.com/senselive/vms-api/internal/models"
	"github.com/senselive/vms-api/internal/repository"
	"github.com/senselive/vms-api/internal/statemachine"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Actor identifies who is driving a workflow transition, for the audit
// trail.
type Actor struct {
	UserID    uint
	IP        string
	UserAgent string
}

// AuditRecorder records workflow actions for the audit trail.
type AuditRecorder interface {
	Record(userID uint, action, entity, entityID, details, ip, userAgent string)
}

// VisitService owns the visit log and its approval workflow. Every mutation
// of a visit row goes through here and nowhere else.
type VisitService struct {
	visitLogRepo repository.VisitLogRepository
	visitorSvc   *VisitorService
	audit        AuditRecorder
	cfg          *config.Config
}

// NewVisitService creates a new visit service
func NewVisitService(visitLogRepo repository.VisitLogRepository, visitorSvc *VisitorService, audit AuditRecorder, cfg *config.Config) *VisitService {
	return &VisitService{
		visitLogRepo: visitLogRepo,
		visitorSvc:   visitorSvc,
		audit:        audit,
		cfg:          cfg,
	}
}

// CreateVisitInput carries a new visit request from the registration front
// end.
type CreateVisitInput struct {
	FirstName           string
	LastName            string
	Email               string
	ContactNumber       string
	Company             string
	VisitDate           time.Time
	AccompanyingPersons datatypes.JSON
	DepartmentID        uint
	HostUserID          uint
	Purpose             string
	VisitType           string
	VisitorType         string
	Location            string
}

// CreateVisit resolves the visitor identity and opens a visit log in its
// initial approval state: planned visits arrive pre-approved by the host
// manager, walk-ins start with the manager gate unset.
func (s *VisitService) CreateVisit(ctx context.Context, actor Actor, in CreateVisitInput) (*models.VisitLog, error) {
	if !models.ValidVisitType(in.VisitType) {
		return nil, NewValidationError("Invalid visit type specified.")
	}

	visitor, err := s.visitorSvc.Resolve(ctx, in.FirstName, in.LastName, in.Email, in.ContactNumber, in.Company)
	if err != nil {
		return nil, err
	}

	managerApproval := models.ApprovalUnset
	if in.VisitType == models.VisitTypePlanned {
		managerApproval = models.ApprovalGranted
	}

	accompanying := in.AccompanyingPersons
	if accompanying == nil {
		accompanying = datatypes.JSON([]byte("[]"))
	}

	log := &models.VisitLog{
		ID:                  uuid.NewString(),
		VisitorID:           visitor.ID,
		DepartmentID:        in.DepartmentID,
		HostUserID:          in.HostUserID,
		VisitDate:           in.VisitDate,
		Purpose:             in.Purpose,
		VisitType:           in.VisitType,
		VisitorType:         in.VisitorType,
		Location:            in.Location,
		AccompanyingPersons: accompanying,
		ManagerApproval:     managerApproval,
	}
	if err := s.visitLogRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	s.audit.Record(actor.UserID, models.AuditActionVisitCreated, "visit_log", log.ID,
		fmt.Sprintf("visit_type=%s visitor=%s", in.VisitType, visitor.ID), actor.IP, actor.UserAgent)

	return log, nil
}

// ManagerDecide sets the manager approval gate on a visit.
func (s *VisitService) ManagerDecide(ctx context.Context, actor Actor, visitID string, approve bool) (*models.VisitLog, error) {
	log, err := s.findLog(ctx, visitID)
	if err != nil {
		return nil, err
	}

	decision := models.ApprovalOf(approve)
	machine := statemachine.NewVisitFSM(log, s.cfg.LegacyCheckInOnReject)
	if err := machine.ManagerDecide(ctx, decision); err != nil {
		return nil, err
	}

	if err := s.visitLogRepo.UpdateColumns(ctx, log, "manager_approval"); err != nil {
		return nil, err
	}

	s.audit.Record(actor.UserID, models.AuditActionManagerDecision, "visit_log", log.ID,
		"decision="+decision.String(), actor.IP, actor.UserAgent)

	return log, nil
}

// SecurityDecide sets the security approval gate, attaches the security
// data blob and stamps the check-in time.
func (s *VisitService) SecurityDecide(ctx context.Context, actor Actor, visitID string, approve bool, securityData datatypes.JSON) (*models.VisitLog, error) {
	log, err := s.findLog(ctx, visitID)
	if err != nil {
		return nil, err
	}

	decision := models.ApprovalOf(approve)
	machine := statemachine.NewVisitFSM(log, s.cfg.LegacyCheckInOnReject)
	if err := machine.SecurityDecide(ctx, decision, securityData, time.Now()); err != nil {
		return nil, err
	}

	columns := []string{"security_approval", "security_data"}
	if decision == models.ApprovalGranted || s.cfg.LegacyCheckInOnReject {
		columns = append(columns, "check_in_time")
	}
	if err := s.visitLogRepo.UpdateColumns(ctx, log, columns...); err != nil {
		return nil, err
	}

	s.audit.Record(actor.UserID, models.AuditActionSecurityDecision, "visit_log", log.ID,
		"decision="+decision.String(), actor.IP, actor.UserAgent)

	return log, nil
}

// Checkout stamps the checkout time on a visit.
func (s *VisitService) Checkout(ctx context.Context, actor Actor, visitLogID string) (*models.VisitLog, error) {
	log, err := s.findLog(ctx, visitLogID)
	if err != nil {
		return nil, err
	}

	machine := statemachine.NewVisitFSM(log, s.cfg.LegacyCheckInOnReject)
	if err := machine.CheckOut(ctx, time.Now()); err != nil {
		return nil, err
	}

	if err := s.visitLogRepo.UpdateColumns(ctx, log, "check_out_time"); err != nil {
		return nil, err
	}

	s.audit.Record(actor.UserID, models.AuditActionCheckout, "visit_log", log.ID, "", actor.IP, actor.UserAgent)

	return log, nil
}

// ExitDecide sets the manager exit approval gate on a visit.
func (s *VisitService) ExitDecide(ctx context.Context, actor Actor, visitID string, approve bool) (*models.VisitLog, error) {
	log, err := s.findLog(ctx, visitID)
	if err != nil {
		return nil, err
	}

	decision := models.ApprovalOf(approve)
	machine := statemachine.NewVisitFSM(log, s.cfg.LegacyCheckInOnReject)
	if err := machine.ExitDecide(decision); err != nil {
		return nil, err
	}

	if err := s.visitLogRepo.UpdateColumns(ctx, log, "manager_exit_approval"); err != nil {
		return nil, err
	}

	s.audit.Record(actor.UserID, models.AuditActionExitDecision, "visit_log", log.ID,
		"decision="+decision.String(), actor.IP, actor.UserAgent)

	return log, nil
}

// FindFull returns a visit with its visitor, host and department loaded.
func (s *VisitService) FindFull(ctx context.Context, visitID string) (*models.VisitLog, error) {
	log, err := s.visitLogRepo.FindByIDFull(ctx, visitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

// AllLogs returns every visit log, org-wide.
func (s *VisitService) AllLogs(ctx context.Context) ([]models.VisitLogResponse, error) {
	logs, err := s.visitLogRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(logs), nil
}

// DepartmentLogs returns visit logs for one department.
func (s *VisitService) DepartmentLogs(ctx context.Context, departmentID uint) ([]models.VisitLogResponse, error) {
	logs, err := s.visitLogRepo.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return toResponses(logs), nil
}

// ManagerRequests returns walk-ins awaiting the host manager's decision.
func (s *VisitService) ManagerRequests(ctx context.Context, hostUserID uint) ([]models.VisitLogResponse, error) {
	logs, err := s.visitLogRepo.ListPendingManager(ctx, hostUserID)
	if err != nil {
		return nil, err
	}
	return toResponses(logs), nil
}

// SecurityRequests returns manager-approved visits awaiting security.
func (s *VisitService) SecurityRequests(ctx context.Context) ([]models.VisitLogResponse, error) {
	logs, err := s.visitLogRepo.ListSecurityPending(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(logs), nil
}

// ProcessedLogs returns fully approved, checked-out visits in a date range.
func (s *VisitService) ProcessedLogs(ctx context.Context, start, end time.Time) ([]models.VisitLogResponse, error) {
	logs, err := s.visitLogRepo.ListProcessed(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return toResponses(logs), nil
}

func (s *VisitService) findLog(ctx context.Context, visitID string) (*models.VisitLog, error) {
	log, err := s.visitLogRepo.FindByID(ctx, visitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

func toResponses(logs []models.VisitLog) []models.VisitLogResponse {
	responses := make([]models.VisitLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, logs[i].ToResponse())
	}
	return responses
}
