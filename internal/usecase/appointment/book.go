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

// BookAppointment creates a confirmed appointment for the calling client.
type BookAppointment struct {
	Deps
}

func NewBookAppointment(deps Deps) *BookAppointment {
	return &BookAppointment{Deps: deps.withDefaults()}
}

func (uc *BookAppointment) Execute(
	ctx context.Context,
	who actor.Actor,
	in validators.BookingInput,
) (ap *models.Appointment, err error) {

	defer func() { uc.Metrics.ObserveBooking("online", outcome(err)) }()

	// --------------------------------------------------
	// Service / client
	// --------------------------------------------------
	serviceID, ok := in.Service()
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	svc, err := uc.Repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.Repo.GetProfile(ctx, who.ID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Start must be a free slot right now (never the cache)
	// --------------------------------------------------
	start := in.Start()
	day := timezone.StartOfDay(start, uc.Location)

	slots, err := uc.daySlots(ctx, day, svc)
	if err != nil {
		return nil, err
	}
	slots = domain.FilterPast(slots, uc.Now())

	if !domain.ContainsStart(slots, start) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	ap = domain.New(who.ID, *svc, start, in.ClientNotes)

	if err := uc.Repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, start)

	uc.Audit.Dispatch(audit.Event{
		ActorID:  &who.ID,
		Action:   audit.ActionAppointmentBooked,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"service_id": svc.ID, "start_time": ap.StartTime},
	})

	uc.Log.Info("appointment booked",
		zap.Int64("appointment_id", ap.ID),
		zap.Int64("service_id", svc.ID),
		zap.Time("start", ap.StartTime),
	)

	return ap, nil
}
