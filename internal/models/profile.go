package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile mirrors the identity provider's user; rows are created by the
// auth collaborator and only edited here.
type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	FullName *string `gorm:"size:150" json:"full_name"`
	Phone    *string `gorm:"size:30" json:"phone"`
	Email    *string `gorm:"size:150" json:"email"`
	IsAdmin  bool    `gorm:"not null;default:false" json:"is_admin"`
	Notes    *string `gorm:"type:text" json:"notes"`

	FavoriteServiceID *int64 `json:"favorite_service_id"`

	NotifyEmailConfirmation bool `gorm:"not null" json:"notify_email_confirmation"`
	NotifySMSReminder       bool `gorm:"column:notify_sms_reminder;not null" json:"notify_sms_reminder"`
	MarketingOptIn          bool `gorm:"not null;default:false" json:"marketing_opt_in"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	if p.Email != nil {
		return *p.Email
	}
	return p.ID.String()
}
