package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

type Repository interface {
	// -------- Catalogue / identity --------
	GetService(
		ctx context.Context,
		id int64,
	) (*models.Service, error)

	GetProfile(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Profile, error)

	// -------- Availability --------
	ListWorkSchedules(
		ctx context.Context,
		dayOfWeek int,
	) ([]models.WorkSchedule, error)

	ListOverrides(
		ctx context.Context,
		date string,
	) ([]models.ScheduleOverride, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (create / conflict) --------
	AssertNoTimeConflict(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) error

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id int64,
	) (*models.Appointment, error)

	// UpdateAppointmentStatus writes ap's status only if the stored row is
	// still in from; a lost race yields invalid_transition.
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error
}
