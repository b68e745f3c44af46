package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	ActorID *uuid.UUID `gorm:"type:uuid;index" json:"actor_id"`
	Action  string     `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *int64 `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
