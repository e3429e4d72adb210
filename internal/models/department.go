package models

import "time"

// Department is static reference data; users and visit logs both point at it.
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"department_id"`
	Name      string    `gorm:"column:department_name;uniqueIndex;not null" json:"department_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name for Department
func (Department) TableName() string {
	return "vms_departments"
}
