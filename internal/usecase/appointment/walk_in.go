package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/ora-fixa/internal/audit"
	"github.com/BruksfildServices01/ora-fixa/internal/domain/actor"
	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

// AddWalkIn lets an admin record an appointment for an existing client at
// any free interval, inside opening hours or not.
type AddWalkIn struct {
	Deps
}

func NewAddWalkIn(deps Deps) *AddWalkIn {
	return &AddWalkIn{Deps: deps.withDefaults()}
}

func (uc *AddWalkIn) Execute(
	ctx context.Context,
	who actor.Actor,
	in validators.WalkInInput,
) (ap *models.Appointment, err error) {

	defer func() { uc.Metrics.ObserveBooking("walk_in", outcome(err)) }()

	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}

	serviceID, ok := in.Service()
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	svc, err := uc.Repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	client, err := uc.Repo.GetProfile(ctx, in.Client())
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseDateTime(in.Date, in.Time, uc.Location)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	ap = domain.New(client.ID, *svc, start, in.ClientNotes)

	if err := uc.Repo.AssertNoTimeConflict(ctx, ap.StartTime, ap.EndTime); err != nil {
		return nil, err
	}

	if err := uc.Repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, start)

	uc.Audit.Dispatch(audit.Event{
		ActorID:  &who.ID,
		Action:   audit.ActionAppointmentWalkIn,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"client_id": client.ID, "service_id": svc.ID},
	})

	uc.Log.Info("walk-in recorded",
		zap.Int64("appointment_id", ap.ID),
		zap.String("client_id", client.ID.String()),
		zap.Time("start", ap.StartTime),
	)

	return ap, nil
}
