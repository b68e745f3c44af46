package auditlog

import (
	"context"

	"github.com/BruksfildServices01/ora-fixa/internal/domain/actor"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

type Repository interface {
	List(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type List struct {
	repo Repository
}

func NewList(repo Repository) *List {
	return &List{repo: repo}
}

func (uc *List) Execute(ctx context.Context, who actor.Actor, limit int) ([]models.AuditLog, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}
	if limit > 500 {
		limit = 500
	}

	rows, err := uc.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.AuditLog{}
	}
	return rows, nil
}
