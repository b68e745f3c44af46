package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/ora-fixa/internal/datastore"
	"github.com/BruksfildServices01/ora-fixa/internal/db/dbtest"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

func TestDispatcherPersistsEvents(t *testing.T) {
	store := datastore.NewGormStore(dbtest.Open(t), time.Second)
	d := NewDispatcher(New(store), zap.NewNop(), 10)

	actor := uuid.New()
	id := int64(7)
	d.Dispatch(Event{
		ActorID:  &actor,
		Action:   ActionAppointmentCancelled,
		Entity:   "appointment",
		EntityID: &id,
		Metadata: map[string]string{"from": "confirmata"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	var rows []models.AuditLog
	require.NoError(t, store.Get(context.Background(), "audit_logs", datastore.Query{}, &rows))
	require.Len(t, rows, 1)

	assert.Equal(t, ActionAppointmentCancelled, rows[0].Action)
	assert.Equal(t, actor, *rows[0].ActorID)
	assert.Equal(t, id, *rows[0].EntityID)
	assert.JSONEq(t, `{"from":"confirmata"}`, rows[0].Metadata)
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	store := datastore.NewGormStore(dbtest.Open(t), time.Second)
	d := NewDispatcher(New(store), nil, 1)

	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionServiceSaved})
	})
}

func TestNilDispatcherIgnoresEvents(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: ActionServiceSaved}) })
}
