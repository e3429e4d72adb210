package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User       UserRepository
	Department DepartmentRepository
	Visitor    VisitorRepository
	VisitLog   VisitLogRepository
	Analytics  AnalyticsRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Department: NewDepartmentRepository(db),
		Visitor:    NewVisitorRepository(db),
		VisitLog:   NewVisitLogRepository(db),
		Analytics:  NewAnalyticsRepository(db),
	}
}
