package models

import "time"

// AuditLog records who performed which workflow action on which record.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Action    string    `gorm:"not null;index" json:"action"`
	Entity    string    `gorm:"not null" json:"entity"`
	EntityID  string    `gorm:"index" json:"entity_id"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "vms_audit_logs"
}

// Audit action constants
const (
	AuditActionVisitCreated     = "visit_created"
	AuditActionManagerDecision  = "manager_decision"
	AuditActionSecurityDecision = "security_decision"
	AuditActionCheckout         = "checkout"
	AuditActionExitDecision     = "exit_decision"
)
