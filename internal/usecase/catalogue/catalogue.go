// Package catalogue manages services and opening hours.
package catalogue

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/ora-fixa/internal/audit"
	"github.com/BruksfildServices01/ora-fixa/internal/cache"
	"github.com/BruksfildServices01/ora-fixa/internal/domain/actor"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

type Repository interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id int64) (*models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	UpdateService(ctx context.Context, id int64, patch map[string]any) error

	ListAllWorkSchedules(ctx context.Context) ([]models.WorkSchedule, error)
	ReplaceWorkSchedules(ctx context.Context, rows []models.WorkSchedule) error
	ListOverridesFrom(ctx context.Context, from string) ([]models.ScheduleOverride, error)
	UpsertOverride(ctx context.Context, o *models.ScheduleOverride) error
}

type Service struct {
	repo  Repository
	cache cache.SlotCache
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewService(repo Repository, slots cache.SlotCache, audit *audit.Dispatcher, log *zap.Logger) *Service {
	if slots == nil {
		slots = cache.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, cache: slots, audit: audit, log: log}
}

// =====================================================
// SERVICES
// =====================================================

func (s *Service) ListServices(ctx context.Context) ([]models.Service, error) {
	out, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Service{}
	}
	return out, nil
}

func (s *Service) CreateService(ctx context.Context, who actor.Actor, in validators.ServiceInput) (*models.Service, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}

	svc := &models.Service{
		Name:            in.Name,
		Description:     in.Description,
		DurationMinutes: int(in.DurationMinutes),
		Price:           in.Price,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	s.saved(who, svc.ID)
	return svc, nil
}

// UpdateService rewrites a service. Stored appointments keep their end time.
func (s *Service) UpdateService(ctx context.Context, who actor.Actor, id int64, in validators.ServiceInput) (*models.Service, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}

	err := s.repo.UpdateService(ctx, id, map[string]any{
		"name":             in.Name,
		"description":      in.Description,
		"duration_minutes": in.DurationMinutes,
		"price":            in.Price,
	})
	if err != nil {
		return nil, err
	}

	s.dropSlots(ctx)
	s.saved(who, id)
	return s.repo.GetService(ctx, id)
}

func (s *Service) saved(who actor.Actor, id int64) {
	s.audit.Dispatch(audit.Event{
		ActorID:  &who.ID,
		Action:   audit.ActionServiceSaved,
		Entity:   "service",
		EntityID: &id,
	})
}

// =====================================================
// SCHEDULE
// =====================================================

func (s *Service) ListWorkSchedules(ctx context.Context, who actor.Actor) ([]models.WorkSchedule, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}
	out, err := s.repo.ListAllWorkSchedules(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.WorkSchedule{}
	}
	return out, nil
}

func (s *Service) ReplaceWorkSchedules(ctx context.Context, who actor.Actor, in validators.WorkSchedulesInput) ([]models.WorkSchedule, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}

	rows := make([]models.WorkSchedule, 0, len(in.Days))
	for _, d := range in.Days {
		rows = append(rows, models.WorkSchedule{
			DayOfWeek: int(d.DayOfWeek),
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsActive:  d.IsActive,
		})
	}

	if err := s.repo.ReplaceWorkSchedules(ctx, rows); err != nil {
		return nil, err
	}

	s.dropSlots(ctx)
	s.audit.Dispatch(audit.Event{
		ActorID:  &who.ID,
		Action:   audit.ActionScheduleReplaced,
		Entity:   "work_schedule",
		Metadata: map[string]int{"days": len(rows)},
	})
	return rows, nil
}

func (s *Service) ListOverrides(ctx context.Context, who actor.Actor, from string) ([]models.ScheduleOverride, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}
	out, err := s.repo.ListOverridesFrom(ctx, from)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.ScheduleOverride{}
	}
	return out, nil
}

func (s *Service) SaveOverride(ctx context.Context, who actor.Actor, in validators.OverrideInput) (*models.ScheduleOverride, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}

	o := &models.ScheduleOverride{
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		IsActive:  in.IsActive,
	}
	if err := s.repo.UpsertOverride(ctx, o); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateDate(ctx, in.Date); err != nil {
		s.log.Warn("slot cache invalidation failed", zap.String("date", in.Date), zap.Error(err))
	}
	s.audit.Dispatch(audit.Event{
		ActorID:  &who.ID,
		Action:   audit.ActionOverrideSaved,
		Entity:   "schedule_override",
		Metadata: map[string]any{"date": in.Date, "is_active": in.IsActive},
	})
	return o, nil
}

func (s *Service) dropSlots(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.log.Warn("slot cache flush failed", zap.Error(err))
	}
}
