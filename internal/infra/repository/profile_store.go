package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/ora-fixa/internal/datastore"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

type ProfileRepository struct {
	store datastore.Store
}

func NewProfileRepository(store datastore.Store) *ProfileRepository {
	return &ProfileRepository{store: store}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
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

// ListClients returns non-admin profiles ordered by full name.
func (r *ProfileRepository) ListClients(ctx context.Context) ([]models.Profile, error) {
	var rows []models.Profile
	q := datastore.Where(datastore.Eq("is_admin", false)).OrderBy("full_name", false)
	if err := r.store.Get(ctx, tableProfiles, q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ProfileRepository) UpdateProfile(ctx context.Context, id uuid.UUID, patch map[string]any) error {
	patch["updated_at"] = time.Now().UTC()

	n, err := r.store.Update(ctx, tableProfiles, []datastore.Filter{datastore.Eq("id", id)}, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		return httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return nil
}

func (r *ProfileRepository) CountNewClients(ctx context.Context, start, end time.Time) (int64, error) {
	return r.store.Count(ctx, tableProfiles,
		datastore.Eq("is_admin", false),
		datastore.Gte("created_at", start),
		datastore.Lt("created_at", end),
	)
}

// ListUserAppointments returns a client's appointments, newest first, with
// the service loaded.
func (r *ProfileRepository) ListUserAppointments(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	var rows []models.Appointment
	q := datastore.Where(datastore.Eq("user_id", userID)).OrderBy("start_time", true).With("Service")
	if err := r.store.Get(ctx, tableAppointments, q, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		toUTC(&rows[i])
	}
	return rows, nil
}
