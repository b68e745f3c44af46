package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/ora-fixa/internal/datastore"
	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

const (
	tableAppointments = "appointments"
	tableServices     = "services"
	tableProfiles     = "profiles"
	tableSchedules    = "work_schedules"
	tableOverrides    = "schedule_overrides"
	tableAuditLogs    = "audit_logs"
)

// AppointmentRepository implements the appointment domain's persistence on
// top of the generic data store.
type AppointmentRepository struct {
	store datastore.Store
}

func NewAppointmentRepository(store datastore.Store) *AppointmentRepository {
	return &AppointmentRepository{store: store}
}

// --------------------------------------------------
// Catalogue / identity
// --------------------------------------------------

func (r *AppointmentRepository) GetService(ctx context.Context, id int64) (*models.Service, error) {
	var svc models.Service
	err := r.store.First(ctx, tableServices, datastore.Where(datastore.Eq("id", id)), &svc)
	if errors.Is(err, httperr.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentRepository) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := r.store.First(ctx, tableProfiles, datastore.Where(datastore.Eq("id", id)), &p)
	if errors.Is(err, httperr.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentRepository) ListWorkSchedules(ctx context.Context, dayOfWeek int) ([]models.WorkSchedule, error) {
	var rows []models.WorkSchedule
	q := datastore.Where(datastore.Eq("day_of_week", dayOfWeek)).OrderBy("start_time", false)
	if err := r.store.Get(ctx, tableSchedules, q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepository) ListOverrides(ctx context.Context, date string) ([]models.ScheduleOverride, error) {
	var rows []models.ScheduleOverride
	if err := r.store.Get(ctx, tableOverrides, datastore.Where(datastore.Eq("date", date)), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAppointmentsForPeriod returns every appointment overlapping
// [start, end), any status, with client and service loaded.
func (r *AppointmentRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	q := datastore.Where(
		datastore.Lt("start_time", end),
		datastore.Gt("end_time", start),
	).OrderBy("start_time", false).With("Profile", "Service")

	if err := r.store.Get(ctx, tableAppointments, q, &apps); err != nil {
		return nil, err
	}
	for i := range apps {
		toUTC(&apps[i])
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentRepository) AssertNoTimeConflict(
	ctx context.Context,
	start time.Time,
	end time.Time,
) error {

	var apps []models.Appointment
	q := datastore.Where(
		datastore.Lt("start_time", end),
		datastore.Gt("end_time", start),
	)
	if err := r.store.Get(ctx, tableAppointments, q, &apps); err != nil {
		return err
	}

	for i := range apps {
		toUTC(&apps[i])
	}
	if domain.Blocking(start, end, apps) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return nil
}

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()

	err := r.store.Insert(ctx, tableAppointments, ap)
	if httperr.IsConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentRepository) GetAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	var ap models.Appointment
	err := r.store.First(ctx, tableAppointments, datastore.Where(datastore.Eq("id", id)), &ap)
	if errors.Is(err, httperr.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	if err != nil {
		return nil, err
	}
	toUTC(&ap)
	return &ap, nil
}

func (r *AppointmentRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	patch := map[string]any{"status": ap.Status}
	if ap.StatusChangedAt != nil {
		patch["status_changed_at"] = ap.StatusChangedAt.UTC()
	}

	n, err := r.store.Update(ctx, tableAppointments,
		[]datastore.Filter{
			datastore.Eq("id", ap.ID),
			datastore.In("status", []string{string(from), from.Label()}),
		},
		patch,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func toUTC(ap *models.Appointment) {
	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()
}

// Compile-time check
var _ domain.Repository = (*AppointmentRepository)(nil)
