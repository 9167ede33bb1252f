package models

import "time"

// AuditFields holds the creation stamp stored on every row.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
