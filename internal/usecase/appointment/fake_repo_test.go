package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

// memRepo keeps the same write rules as the store: one live appointment per
// start and status updates conditional on the previous status.
type memRepo struct {
	mu sync.Mutex

	services     map[int64]models.Service
	profiles     map[uuid.UUID]models.Profile
	schedules    []models.WorkSchedule
	overrides    []models.ScheduleOverride
	appointments []models.Appointment
	nextID       int64

	listCalls int
	// afterList runs once, after the next period read returns its rows
	afterList func()
}

func newMemRepo() *memRepo {
	return &memRepo{
		services: map[int64]models.Service{},
		profiles: map[uuid.UUID]models.Profile{},
	}
}

func (r *memRepo) GetService(_ context.Context, id int64) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	return &svc, nil
}

func (r *memRepo) GetProfile(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return &p, nil
}

func (r *memRepo) ListWorkSchedules(_ context.Context, dayOfWeek int) ([]models.WorkSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WorkSchedule
	for _, s := range r.schedules {
		if s.DayOfWeek == dayOfWeek {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memRepo) ListOverrides(_ context.Context, date string) ([]models.ScheduleOverride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ScheduleOverride
	for _, o := range r.overrides {
		if o.Date == date {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memRepo) ListAppointmentsForPeriod(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	r.listCalls++
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	hook := r.afterList
	r.afterList = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *memRepo) AssertNoTimeConflict(_ context.Context, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if domain.Blocking(start, end, r.appointments) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return nil
}

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if domain.Blocking(ap.StartTime, ap.EndTime, r.appointments) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	r.nextID++
	ap.ID = r.nextID
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *memRepo) GetAppointment(_ context.Context, id int64) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.ID == id {
			cp := ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
}

func (r *memRepo) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID && r.appointments[i].Status == string(from) {
			r.appointments[i].Status = ap.Status
			r.appointments[i].StatusChangedAt = ap.StatusChangedAt
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidTransition)
}

var _ domain.Repository = (*memRepo)(nil)
