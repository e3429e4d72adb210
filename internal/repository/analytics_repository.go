package repository

import (
	"context"
	"time"

	"github.com/senselive/vms-api/internal/models"
	"gorm.io/gorm"
)

// AnalyticsRepository defines the read-only rollup queries behind the
// dashboards. Each method is one independent query; callers fan them out
// concurrently and join the results.
type AnalyticsRepository interface {
	VisitTypeCounts(ctx context.Context, departmentID *uint, start, end *time.Time) ([]models.VisitTypeCount, error)
	DepartmentVisitCounts(ctx context.Context, start, end *time.Time) ([]models.DepartmentVisitCount, error)
	ApprovalStatusCounts(ctx context.Context, departmentID *uint, start, end *time.Time) ([]models.ApprovalStatusCount, error)
	CountVisitsOn(ctx context.Context, date time.Time) (int64, error)
	CountPendingSecurity(ctx context.Context) (int64, error)
	CountApprovedSecurity(ctx context.Context) (int64, error)
	CountCurrentlyInPlant(ctx context.Context) (int64, error)
	CheckedInVisitors(ctx context.Context) ([]models.CheckedInVisitor, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) VisitTypeCounts(ctx context.Context, departmentID *uint, start, end *time.Time) ([]models.VisitTypeCount, error) {
	var counts []models.VisitTypeCount
	query := r.db.WithContext(ctx).
		Model(&models.VisitLog{}).
		Select("visit_type, COUNT(*) AS count").
		Group("visit_type")
	query = scopeVisits(query, departmentID, start, end)
	err := query.Scan(&counts).Error
	return counts, err
}

func (r *analyticsRepository) DepartmentVisitCounts(ctx context.Context, start, end *time.Time) ([]models.DepartmentVisitCount, error) {
	var counts []models.DepartmentVisitCount
	query := r.db.WithContext(ctx).
		Model(&models.VisitLog{}).
		Select("d.department_name AS department_name, COUNT(vms_visit_logs.visit_id) AS visit_count").
		Joins("LEFT JOIN vms_departments d ON vms_visit_logs.department_id = d.id").
		Group("d.department_name")
	query = scopeVisits(query, nil, start, end)
	err := query.Scan(&counts).Error
	return counts, err
}

// ApprovalStatusCounts groups by the derived status. The status is computed
// in the query from the two gates, never read from a stored column.
func (r *analyticsRepository) ApprovalStatusCounts(ctx context.Context, departmentID *uint, start, end *time.Time) ([]models.ApprovalStatusCount, error) {
	var counts []models.ApprovalStatusCount
	statusExpr := `CASE
		WHEN manager_approval = TRUE AND security_approval = TRUE THEN 'Approved'
		WHEN manager_approval = FALSE OR security_approval = FALSE THEN 'Rejected'
		ELSE 'Pending'
	END`
	query := r.db.WithContext(ctx).
		Model(&models.VisitLog{}).
		Select(statusExpr + " AS status, COUNT(*) AS count").
		Group("status")
	query = scopeVisits(query, departmentID, start, end)
	err := query.Scan(&counts).Error
	return counts, err
}

func (r *analyticsRepository) CountVisitsOn(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VisitLog{}).
		Where("visit_date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountPendingSecurity(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VisitLog{}).
		Where("security_approval IS NULL").
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountApprovedSecurity(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VisitLog{}).
		Where("security_approval = TRUE").
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountCurrentlyInPlant(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VisitLog{}).
		Where("check_in_time IS NOT NULL AND check_out_time IS NULL").
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CheckedInVisitors(ctx context.Context) ([]models.CheckedInVisitor, error) {
	var rows []models.CheckedInVisitor
	err := r.db.WithContext(ctx).
		Model(&models.VisitLog{}).
		Select(`vms_visit_logs.visit_id AS visit_id,
			v.first_name AS visitor_first_name,
			v.last_name AS visitor_last_name,
			v.contact_number AS visitor_contact,
			v.email AS visitor_email,
			u.first_name AS host_first_name,
			u.last_name AS host_last_name,
			vms_visit_logs.check_in_time AS check_in_time,
			vms_visit_logs.purpose AS purpose`).
		Joins("JOIN vms_visitors v ON vms_visit_logs.visitor_id = v.id").
		Joins("JOIN vms_users u ON vms_visit_logs.visiting_user_id = u.id").
		Where("vms_visit_logs.check_in_time IS NOT NULL AND vms_visit_logs.check_out_time IS NULL").
		Scan(&rows).Error
	return rows, err
}

// scopeVisits applies the optional department and date-range filters shared
// by the rollup queries.
func scopeVisits(query *gorm.DB, departmentID *uint, start, end *time.Time) *gorm.DB {
	if departmentID != nil {
		query = query.Where("vms_visit_logs.department_id = ?", *departmentID)
	}
	if start != nil {
		query = query.Where("vms_visit_logs.visit_date >= ?", start.Format("2006-01-02"))
	}
	if end != nil {
		query = query.Where("vms_visit_logs.visit_date <= ?", end.Format("2006-01-02"))
	}
	return query
}
