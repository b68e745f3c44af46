package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/ora-fixa/internal/datastore"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

const (
	ActionAppointmentBooked    = "appointment.booked"
	ActionAppointmentWalkIn    = "appointment.walk_in"
	ActionAppointmentCompleted = "appointment.completed"
	ActionAppointmentNoShow    = "appointment.no_show"
	ActionAppointmentCancelled = "appointment.cancelled"
	ActionServiceSaved         = "service.saved"
	ActionScheduleReplaced     = "schedule.replaced"
	ActionOverrideSaved        = "schedule.override_saved"
	ActionClientUpdated        = "client.updated"
)

type Logger struct {
	store datastore.Store
}

func New(store datastore.Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(
	ctx context.Context,
	actorID *uuid.UUID,
	action string,
	entity string,
	entityID *int64,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	return l.store.Insert(ctx, "audit_logs", &row)
}
