package appointment

import "time"

type AvailabilityInput struct {
	ServiceID int64
	Date      time.Time
}

type TimeSlot struct {
	Start    string    `json:"start"`
	End      string    `json:"end"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// Window is a half-open availability interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}
