package models

// ScheduleOverride replaces the weekly schedule for one date. IsActive=false
// closes the day.
type ScheduleOverride struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Date      string `gorm:"size:10;not null;uniqueIndex" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"size:8" json:"start_time"`
	EndTime   string `gorm:"size:8" json:"end_time"`
	IsActive  bool   `gorm:"not null" json:"is_active"`
}

func (ScheduleOverride) TableName() string { return "schedule_overrides" }
