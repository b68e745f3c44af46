package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Profile *Profile  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"profiles,omitempty"`

	ServiceID int64    `gorm:"not null;index" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"services,omitempty"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;not null;default:'confirmata';index" json:"status"`

	ClientNotes *string `gorm:"type:text" json:"client_notes"`

	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (Appointment) TableName() string { return "appointments" }
