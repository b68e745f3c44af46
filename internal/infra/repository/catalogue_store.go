package repository

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/ora-fixa/internal/datastore"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

// CatalogueRepository covers services and the salon's opening hours.
type CatalogueRepository struct {
	store datastore.Store
}

func NewCatalogueRepository(store datastore.Store) *CatalogueRepository {
	return &CatalogueRepository{store: store}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogueRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var rows []models.Service
	if err := r.store.Get(ctx, tableServices, datastore.Query{}.OrderBy("name", false), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogueRepository) GetService(ctx context.Context, id int64) (*models.Service, error) {
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

func (r *CatalogueRepository) CreateService(ctx context.Context, svc *models.Service) error {
	return r.store.Insert(ctx, tableServices, svc)
}

func (r *CatalogueRepository) UpdateService(ctx context.Context, id int64, patch map[string]any) error {
	n, err := r.store.Update(ctx, tableServices, []datastore.Filter{datastore.Eq("id", id)}, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		return httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	return nil
}

// --------------------------------------------------
// Work schedules / overrides
// --------------------------------------------------

func (r *CatalogueRepository) ListAllWorkSchedules(ctx context.Context) ([]models.WorkSchedule, error) {
	var rows []models.WorkSchedule
	if err := r.store.Get(ctx, tableSchedules, datastore.Query{}.OrderBy("day_of_week", false), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceWorkSchedules swaps the whole weekly table in one transaction.
func (r *CatalogueRepository) ReplaceWorkSchedules(ctx context.Context, rows []models.WorkSchedule) error {
	return r.store.Tx(ctx, func(tx datastore.Store) error {
		if _, err := tx.Delete(ctx, tableSchedules, &models.WorkSchedule{}, datastore.Gte("day_of_week", 0)); err != nil {
			return err
		}
		for i := range rows {
			rows[i].ID = 0
			if err := tx.Insert(ctx, tableSchedules, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListOverridesFrom lists overrides dated on or after from (YYYY-MM-DD).
func (r *CatalogueRepository) ListOverridesFrom(ctx context.Context, from string) ([]models.ScheduleOverride, error) {
	var rows []models.ScheduleOverride
	q := datastore.Query{}.OrderBy("date", false)
	if from != "" {
		q = datastore.Where(datastore.Gte("date", from)).OrderBy("date", false)
	}
	if err := r.store.Get(ctx, tableOverrides, q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertOverride writes the single override allowed per date.
func (r *CatalogueRepository) UpsertOverride(ctx context.Context, o *models.ScheduleOverride) error {
	return r.store.Upsert(ctx, tableOverrides, o, "date")
}
