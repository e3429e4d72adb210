package services

import (
	"context"
	"time"

	"github.com/senselive/vms-api/internal/models"
	"github.com/senselive/vms-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

// AnalyticsService computes the read-only dashboard rollups. Independent
// queries are issued concurrently and joined before responding; all must
// succeed.
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// VisitAnalytics returns the org-wide rollups, optionally bounded by a date
// range and scoped to one department.
func (s *AnalyticsService) VisitAnalytics(ctx context.Context, departmentID *uint, start, end *time.Time) (*models.VisitAnalytics, error) {
	var result models.VisitAnalytics

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.VisitTypeCounts, err = s.analyticsRepo.VisitTypeCounts(ctx, departmentID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		result.DepartmentCounts, err = s.analyticsRepo.DepartmentVisitCounts(ctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		result.ApprovalStatusCounts, err = s.analyticsRepo.ApprovalStatusCounts(ctx, departmentID, start, end)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

// SecurityAnalytics returns the gate dashboard: today's traffic, approval
// queue sizes and who is currently inside.
func (s *AnalyticsService) SecurityAnalytics(ctx context.Context) (*models.SecurityAnalytics, error) {
	var result models.SecurityAnalytics
	today := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.TodaysVisitors, err = s.analyticsRepo.CountVisitsOn(ctx, today)
		return err
	})
	g.Go(func() error {
		var err error
		result.PendingSecurityApprovals, err = s.analyticsRepo.CountPendingSecurity(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		result.ApprovedSecurityApprovals, err = s.analyticsRepo.CountApprovedSecurity(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		result.CurrentlyInPlant, err = s.analyticsRepo.CountCurrentlyInPlant(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		result.CheckedInVisitors, err = s.analyticsRepo.CheckedInVisitors(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}
