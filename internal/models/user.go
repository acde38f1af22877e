// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// JSONMap is a free-form JSON document column. The external identity API
// decides its shape, so it stays schemaless on our side.
type JSONMap map[string]any

// User represents an account resolved through the external identity API.
// Data holds the identity payload verbatim: a "user" block with profile
// fields and an "ngo" block with the owning organization. OrgID mirrors
// ngo.id into an indexed column so lookups don't have to scan documents.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrgID     int64     `gorm:"uniqueIndex;not null" json:"org_id"`
	Data      JSONMap   `gorm:"serializer:json" json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
