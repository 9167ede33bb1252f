package domain

import "time"

// Role is the permission level carried by an authenticated caller.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "COMPTABLE"
	RoleReader     Role = "LECTEUR"
)

// CanWrite reports whether the role may run mutating operations.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleAccountant
}

// AuditEvent records a mutating operation.
type AuditEvent struct {
	Actor      string         `json:"actor"`
	Action     string         `json:"action"`
	CompanyID  int64          `json:"companyID,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}
