package repository

import (
	"context"
	"time"

	"github.com/BruksfildServices01/ora-fixa/internal/datastore"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

// DashboardRepository groups the reads behind the admin dashboard.
type DashboardRepository struct {
	appointments *AppointmentRepository
	profiles     *ProfileRepository
	catalogue    *CatalogueRepository
}

func NewDashboardRepository(store datastore.Store) *DashboardRepository {
	return &DashboardRepository{
		appointments: NewAppointmentRepository(store),
		profiles:     NewProfileRepository(store),
		catalogue:    NewCatalogueRepository(store),
	}
}

func (r *DashboardRepository) ListAppointmentsForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	return r.appointments.ListAppointmentsForPeriod(ctx, start, end)
}

func (r *DashboardRepository) CountNewClients(ctx context.Context, start, end time.Time) (int64, error) {
	return r.profiles.CountNewClients(ctx, start, end)
}

func (r *DashboardRepository) ListClients(ctx context.Context) ([]models.Profile, error) {
	return r.profiles.ListClients(ctx)
}

func (r *DashboardRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	return r.catalogue.ListServices(ctx)
}
