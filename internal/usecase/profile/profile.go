// Package profile covers what clients edit about themselves and what admins
// edit about clients.
package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/ora-fixa/internal/audit"
	"github.com/BruksfildServices01/ora-fixa/internal/domain/actor"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/dashboard"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

type Repository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	ListClients(ctx context.Context) ([]models.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch map[string]any) error
	ListUserAppointments(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error)
}

type Service struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewService(repo Repository, audit *audit.Dispatcher) *Service {
	return &Service{repo: repo, audit: audit}
}

func (s *Service) Me(ctx context.Context, who actor.Actor) (*models.Profile, error) {
	return s.repo.GetProfile(ctx, who.ID)
}

func (s *Service) UpdateProfile(ctx context.Context, who actor.Actor, in validators.ProfileInput) (*models.Profile, error) {
	err := s.repo.UpdateProfile(ctx, who.ID, map[string]any{
		"full_name": in.FullName,
		"phone":     in.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, who.ID)
}

// UpdateAccount edits name, phone and notes of target. Clients edit their
// own account; admins edit anyone's.
func (s *Service) UpdateAccount(
	ctx context.Context,
	who actor.Actor,
	target uuid.UUID,
	in validators.AccountInput,
) (*models.Profile, error) {

	if !who.CanActOn(target) {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	err := s.repo.UpdateProfile(ctx, target, map[string]any{
		"full_name": in.FullName,
		"phone":     in.Phone,
		"notes":     in.Notes,
	})
	if err != nil {
		return nil, err
	}

	if target != who.ID {
		s.audit.Dispatch(audit.Event{
			ActorID:  &who.ID,
			Action:   audit.ActionClientUpdated,
			Entity:   "profile",
			Metadata: map[string]string{"client_id": target.String()},
		})
	}

	return s.repo.GetProfile(ctx, target)
}

func (s *Service) UpdatePreferences(ctx context.Context, who actor.Actor, in validators.PreferencesInput) (*models.Profile, error) {
	err := s.repo.UpdateProfile(ctx, who.ID, map[string]any{
		"notify_email_confirmation": in.NotifyEmailConfirmation,
		"notify_sms_reminder":       in.NotifySMSReminder,
		"marketing_opt_in":          in.MarketingOptIn,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, who.ID)
}

func (s *Service) Stats(ctx context.Context, who actor.Actor) (dashboard.UserStats, error) {
	apps, err := s.repo.ListUserAppointments(ctx, who.ID)
	if err != nil {
		return dashboard.UserStats{}, err
	}
	return dashboard.ComputeUserStats(apps), nil
}

func (s *Service) Appointments(ctx context.Context, who actor.Actor) ([]models.Appointment, error) {
	apps, err := s.repo.ListUserAppointments(ctx, who.ID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Appointment{}
	}
	return apps, nil
}

func (s *Service) ListClients(ctx context.Context, who actor.Actor) ([]models.Profile, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []models.Profile{}
	}
	return clients, nil
}
