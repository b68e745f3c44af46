package models

import "time"

type Service struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     *string `gorm:"type:text" json:"description"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Price           float64 `gorm:"not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
}

func (Service) TableName() string { return "services" }

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
