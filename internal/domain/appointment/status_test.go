package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

var allActions = []Action{ActionComplete, ActionNoShow, ActionCancel}

func TestTransitionFromConfirmedSucceedsOncePerAction(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	want := map[Action]Status{
		ActionComplete: StatusCompleted,
		ActionNoShow:   StatusNoShow,
		ActionCancel:   StatusCancelled,
	}

	for _, action := range allActions {
		t.Run(string(action), func(t *testing.T) {
			ap := &models.Appointment{Status: string(StatusConfirmed)}

			prev, err := Transition(ap, action, now)
			require.NoError(t, err)
			assert.Equal(t, StatusConfirmed, prev)
			assert.Equal(t, string(want[action]), ap.Status)
			require.NotNil(t, ap.StatusChangedAt)

			_, err = Transition(ap, action, now)
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
		})
	}
}

func TestTransitionFromTerminalAlwaysFails(t *testing.T) {
	for _, from := range []Status{StatusCompleted, StatusNoShow, StatusCancelled} {
		for _, action := range allActions {
			ap := &models.Appointment{Status: string(from)}

			_, err := Transition(ap, action, time.Now())

			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition), "%s -> %s", from, action)
			assert.Equal(t, string(from), ap.Status)
		}
	}
}

func TestTransitionAcceptsDiacriticStoredStatus(t *testing.T) {
	ap := &models.Appointment{Status: "confirmată"}

	require.NoError(t, Complete(ap, time.Now()))
	assert.Equal(t, string(StatusCompleted), ap.Status)
}

func TestUnknownAction(t *testing.T) {
	_, err := Transition(&models.Appointment{Status: string(StatusConfirmed)}, Action("delete"), time.Now())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUnknownAction))

	_, ok := ParseAction("No-Show")
	assert.True(t, ok)
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "finalizată", StatusCompleted.Label())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusNoShow.Blocks())
	assert.False(t, StatusCancelled.Blocks())

	st, ok := ParseStatus("anulată")
	assert.True(t, ok)
	assert.Equal(t, StatusCancelled, st)
}

func TestNewDerivesEndFromService(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.FixedZone("EEST", 3*3600))
	svc := models.Service{ID: 7, DurationMinutes: 45}

	ap := New(uuid.New(), svc, start, nil)

	assert.Equal(t, string(StatusConfirmed), ap.Status)
	assert.Equal(t, int64(7), ap.ServiceID)
	assert.Equal(t, start.Add(45*time.Minute).UTC(), ap.EndTime)
	assert.Equal(t, time.UTC, ap.StartTime.Location())
}
