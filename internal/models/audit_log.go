package models

import "time"

type AuditLog struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   *int64    `json:"entity_id,omitempty"`
	UserID     *int64    `json:"user_id,omitempty"`
	Action     string    `json:"action"`
	CreatedAt  time.Time `json:"created_at"`
}
