package datastore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ora-fixa/internal/db/dbtest"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

func newStore(t *testing.T) *GormStore {
	return NewGormStore(dbtest.Open(t), time.Second)
}

func TestGetFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, name := range []string{"Tuns", "Barba", "Vopsit"} {
		require.NoError(t, s.Insert(ctx, "services", &models.Service{Name: name, DurationMinutes: 30, Price: 50}))
	}

	var got []models.Service
	err := s.Get(ctx, "services", Where(Neq("name", "Barba")).OrderBy("name", true), &got)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Vopsit", got[0].Name)
	assert.Equal(t, "Tuns", got[1].Name)
}

func TestFirstReturnsNotFound(t *testing.T) {
	s := newStore(t)

	var svc models.Service
	err := s.First(context.Background(), "services", Where(Eq("id", 42)), &svc)

	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestConditionalUpdateReportsRowsAffected(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	start := time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC)
	ap := &models.Appointment{
		UserID:    uuid.New(),
		ServiceID: 1,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    "confirmata",
	}
	require.NoError(t, s.Insert(ctx, "appointments", ap))

	filters := []Filter{Eq("id", ap.ID), Eq("status", "confirmata")}

	n, err := s.Update(ctx, "appointments", filters, map[string]any{"status": "finalizata"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.Update(ctx, "appointments", filters, map[string]any{"status": "anulata"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestInsertConflictIsFlagged(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Insert(ctx, "schedule_overrides", &models.ScheduleOverride{Date: "2025-06-02"}))
	err := s.Insert(ctx, "schedule_overrides", &models.ScheduleOverride{Date: "2025-06-02"})

	assert.True(t, httperr.IsConflict(err))
}

func TestUpsertReplacesByConflictColumn(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Upsert(ctx, "schedule_overrides",
		&models.ScheduleOverride{Date: "2025-06-02", StartTime: "09:00", EndTime: "12:00", IsActive: true}, "date"))
	require.NoError(t, s.Upsert(ctx, "schedule_overrides",
		&models.ScheduleOverride{Date: "2025-06-02", IsActive: false}, "date"))

	var rows []models.ScheduleOverride
	require.NoError(t, s.Get(ctx, "schedule_overrides", Query{}, &rows))
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsActive)
}

func TestTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	boom := errors.New("boom")

	err := s.Tx(ctx, func(tx Store) error {
		if err := tx.Insert(ctx, "work_schedules", &models.WorkSchedule{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.Count(ctx, "work_schedules")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRejectsUnsafeIdentifiers(t *testing.T) {
	s := newStore(t)

	var rows []models.Service
	err := s.Get(context.Background(), "services", Where(Eq("name; DROP TABLE services", "x")), &rows)
	assert.Error(t, err)

	_, err = s.Update(context.Background(), "services", nil, map[string]any{"name": "x"})
	assert.Error(t, err)
}
