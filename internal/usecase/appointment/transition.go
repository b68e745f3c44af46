package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/ora-fixa/internal/audit"
	"github.com/BruksfildServices01/ora-fixa/internal/domain/actor"
	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

var auditActions = map[domain.Action]string{
	domain.ActionComplete: audit.ActionAppointmentCompleted,
	domain.ActionNoShow:   audit.ActionAppointmentNoShow,
	domain.ActionCancel:   audit.ActionAppointmentCancelled,
}

// TransitionAppointment moves a confirmed appointment to a terminal status.
// Admins may apply any action; a client may only cancel their own booking.
type TransitionAppointment struct {
	Deps
}

func NewTransitionAppointment(deps Deps) *TransitionAppointment {
	return &TransitionAppointment{Deps: deps.withDefaults()}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	who actor.Actor,
	appointmentID int64,
	action domain.Action,
) (ap *models.Appointment, err error) {

	defer func() { uc.Metrics.ObserveTransition(string(action), outcome(err)) }()

	if _, err := action.Target(); err != nil {
		return nil, err
	}
	if !who.IsAdmin && action != domain.ActionCancel {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	ap, err = uc.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !who.CanActOn(ap.UserID) {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	from, err := domain.Transition(ap, action, uc.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.Repo.UpdateAppointmentStatus(ctx, ap, from); err != nil {
		return nil, err
	}

	if action == domain.ActionCancel {
		uc.invalidate(ctx, ap.StartTime)
	}

	uc.Audit.Dispatch(audit.Event{
		ActorID:  &who.ID,
		Action:   auditActions[action],
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": string(from), "to": ap.Status},
	})

	uc.Log.Info("appointment status changed",
		zap.Int64("appointment_id", ap.ID),
		zap.String("from", string(from)),
		zap.String("to", ap.Status),
	)

	return ap, nil
}
