package repository

import (
	"context"

	"github.com/BruksfildServices01/ora-fixa/internal/datastore"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

type AuditLogRepository struct {
	store datastore.Store
}

func NewAuditLogRepository(store datastore.Store) *AuditLogRepository {
	return &AuditLogRepository{store: store}
}

// List returns the most recent entries first; limit <= 0 means 100.
func (r *AuditLogRepository) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []models.AuditLog
	q := datastore.Query{}.OrderBy("id", true).Take(limit)
	if err := r.store.Get(ctx, tableAuditLogs, q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
