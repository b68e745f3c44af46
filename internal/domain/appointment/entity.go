package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to the status named by action, stamping now.
func Transition(ap *models.Appointment, action Action, now time.Time) (Status, error) {
	current, ok := ParseStatus(ap.Status)
	if !ok {
		current = Status(ap.Status)
	}

	next, err := CanTransition(current, action)
	if err != nil {
		return "", err
	}

	ap.Status = string(next)
	ap.StatusChangedAt = &now
	return current, nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	_, err := Transition(ap, ActionCancel, now)
	return err
}

func Complete(ap *models.Appointment, now time.Time) error {
	_, err := Transition(ap, ActionComplete, now)
	return err
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	_, err := Transition(ap, ActionNoShow, now)
	return err
}

// New builds a confirmed appointment whose end is derived from the service.
func New(
	userID uuid.UUID,
	service models.Service,
	start time.Time,
	notes *string,
) *models.Appointment {
	return &models.Appointment{
		UserID:      userID,
		ServiceID:   service.ID,
		StartTime:   start.UTC(),
		EndTime:     start.Add(service.Duration()).UTC(),
		Status:      string(InitialStatus()),
		ClientNotes: notes,
	}
}
