package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Approval is an explicit tri-state approval gate. It is persisted as a
// nullable boolean column (NULL/true/false) and serialized the same way on
// the wire, so existing rows and clients keep working.
type Approval int8

const (
	ApprovalUnset Approval = iota
	ApprovalGranted
	ApprovalDenied
)

// ApprovalOf maps a request boolean to the matching gate value.
func ApprovalOf(granted bool) Approval {
	if granted {
		return ApprovalGranted
	}
	return ApprovalDenied
}

func (a Approval) String() string {
	switch a {
	case ApprovalGranted:
		return "granted"
	case ApprovalDenied:
		return "denied"
	default:
		return "unset"
	}
}

// GormDataType tells gorm to create a boolean column for this type.
func (Approval) GormDataType() string {
	return "boolean"
}

// Value implements driver.Valuer: Unset maps to NULL.
func (a Approval) Value() (driver.Value, error) {
	switch a {
	case ApprovalUnset:
		return nil, nil
	case ApprovalGranted:
		return true, nil
	case ApprovalDenied:
		return false, nil
	}
	return nil, fmt.Errorf("invalid approval value: %d", int8(a))
}

// Scan implements sql.Scanner for NULL/true/false columns.
func (a *Approval) Scan(src any) error {
	if src == nil {
		*a = ApprovalUnset
		return nil
	}
	switch v := src.(type) {
	case bool:
		*a = ApprovalOf(v)
	case int64:
		*a = ApprovalOf(v != 0)
	case []byte:
		return a.scanString(string(v))
	case string:
		return a.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Approval", src)
	}
	return nil
}

func (a *Approval) scanString(s string) error {
	switch s {
	case "true", "t", "1":
		*a = ApprovalGranted
	case "false", "f", "0":
		*a = ApprovalDenied
	default:
		return fmt.Errorf("cannot scan %q into Approval", s)
	}
	return nil
}

// MarshalJSON encodes the gate as null/true/false.
func (a Approval) MarshalJSON() ([]byte, error) {
	switch a {
	case ApprovalGranted:
		return []byte("true"), nil
	case ApprovalDenied:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null/true/false into the gate.
func (a *Approval) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	if b == nil {
		*a = ApprovalUnset
		return nil
	}
	*a = ApprovalOf(*b)
	return nil
}
