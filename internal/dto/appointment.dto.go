package dto

import (
	"time"

	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
)

// AppointmentDTO is an appointment as the salon screens show it: clock
// times in the salon's zone and the display status label.
type AppointmentDTO struct {
	ID          int64     `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Date        string    `json:"date"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	ClientNotes *string   `json:"client_notes"`

	ClientID    string  `json:"client_id"`
	ClientName  string  `json:"client_name,omitempty"`
	ClientPhone *string `json:"client_phone,omitempty"`
	ServiceID   int64   `json:"service_id"`
	ServiceName string  `json:"service_name,omitempty"`
	Price       float64 `json:"price"`
}

func FromAppointment(ap models.Appointment, loc *time.Location) AppointmentDTO {
	start := ap.StartTime.In(loc)
	end := ap.EndTime.In(loc)

	status := domain.Status(ap.Status)
	if st, ok := domain.ParseStatus(ap.Status); ok {
		status = st
	}

	out := AppointmentDTO{
		ID:          ap.ID,
		StartTime:   ap.StartTime.UTC(),
		EndTime:     ap.EndTime.UTC(),
		Date:        start.Format(timezone.DateLayout),
		Start:       start.Format(timezone.ClockLayout),
		End:         end.Format(timezone.ClockLayout),
		Status:      string(status),
		StatusLabel: status.Label(),
		ClientNotes: ap.ClientNotes,
		ClientID:    ap.UserID.String(),
		ServiceID:   ap.ServiceID,
	}

	if ap.Profile != nil {
		out.ClientName = ap.Profile.DisplayName()
		out.ClientPhone = ap.Profile.Phone
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
		out.Price = ap.Service.Price
	}
	return out
}

func FromAppointments(apps []models.Appointment, loc *time.Location) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, FromAppointment(ap, loc))
	}
	return out
}
