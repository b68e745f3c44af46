package models

// WorkSchedule is one recurring weekly availability window.
// Several rows per day are allowed.
type WorkSchedule struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	DayOfWeek int    `gorm:"not null;index" json:"day_of_week"` // 0 = Sunday
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`
	IsActive  bool   `gorm:"not null" json:"is_active"`
}

func (WorkSchedule) TableName() string { return "work_schedules" }
