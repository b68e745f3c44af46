package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ora-fixa/internal/datastore"
	"github.com/BruksfildServices01/ora-fixa/internal/db/dbtest"
	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

type fixture struct {
	store   datastore.Store
	client  models.Profile
	service models.Service
}

func strPtr(s string) *string { return &s }

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := datastore.NewGormStore(dbtest.Open(t), time.Second)

	client := models.Profile{ID: uuid.New(), FullName: strPtr("Ana Pop"), NotifyEmailConfirmation: true}
	require.NoError(t, store.Insert(ctx, tableProfiles, &client))

	svc := models.Service{Name: "Tuns", DurationMinutes: 30, Price: 60}
	require.NoError(t, store.Insert(ctx, tableServices, &svc))

	return fixture{store: store, client: client, service: svc}
}

func (f fixture) book(t *testing.T, start time.Time, status domain.Status) *models.Appointment {
	t.Helper()
	ap := domain.New(f.client.ID, f.service, start, nil)
	ap.Status = string(status)
	require.NoError(t, NewAppointmentRepository(f.store).CreateAppointment(context.Background(), ap))
	return ap
}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestGetServiceAndProfileNotFound(t *testing.T) {
	f := newFixture(t)
	repo := NewAppointmentRepository(f.store)
	ctx := context.Background()

	svc, err := repo.GetService(ctx, f.service.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tuns", svc.Name)

	_, err = repo.GetService(ctx, 999)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))

	_, err = repo.GetProfile(ctx, uuid.New())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeClientNotFound))
}

func TestCreateAppointmentSameStartIsSlotUnavailable(t *testing.T) {
	f := newFixture(t)
	start := day.Add(8 * time.Hour)
	f.book(t, start, domain.StatusConfirmed)

	dup := domain.New(f.client.ID, f.service, start, nil)
	err := NewAppointmentRepository(f.store).CreateAppointment(context.Background(), dup)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable), "got %v", err)
}

func TestCancelledAppointmentFreesStart(t *testing.T) {
	f := newFixture(t)
	start := day.Add(8 * time.Hour)
	f.book(t, start, domain.StatusCancelled)

	ap := f.book(t, start, domain.StatusConfirmed)
	assert.NotZero(t, ap.ID)
}

func TestAssertNoTimeConflict(t *testing.T) {
	f := newFixture(t)
	repo := NewAppointmentRepository(f.store)
	ctx := context.Background()

	start := day.Add(8 * time.Hour)
	f.book(t, start, domain.StatusConfirmed)
	f.book(t, start.Add(2*time.Hour), domain.StatusCancelled)

	err := repo.AssertNoTimeConflict(ctx, start.Add(15*time.Minute), start.Add(45*time.Minute))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	// touching intervals do not overlap
	assert.NoError(t, repo.AssertNoTimeConflict(ctx, start.Add(30*time.Minute), start.Add(time.Hour)))
	// cancelled rows never block
	assert.NoError(t, repo.AssertNoTimeConflict(ctx, start.Add(2*time.Hour), start.Add(150*time.Minute)))
}

func TestListAppointmentsForPeriodLoadsRelations(t *testing.T) {
	f := newFixture(t)
	repo := NewAppointmentRepository(f.store)

	f.book(t, day.Add(9*time.Hour), domain.StatusConfirmed)
	f.book(t, day.Add(8*time.Hour), domain.StatusCompleted)
	f.book(t, day.Add(32*time.Hour), domain.StatusConfirmed)

	apps, err := repo.ListAppointmentsForPeriod(context.Background(), day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, apps, 2)

	assert.True(t, apps[0].StartTime.Equal(day.Add(8*time.Hour)))
	require.NotNil(t, apps[0].Profile)
	require.NotNil(t, apps[0].Service)
	assert.Equal(t, "Ana Pop", *apps[0].Profile.FullName)
	assert.Equal(t, "Tuns", apps[0].Service.Name)
	assert.Equal(t, time.UTC, apps[0].StartTime.Location())
}

func TestUpdateAppointmentStatusIsConditional(t *testing.T) {
	f := newFixture(t)
	repo := NewAppointmentRepository(f.store)
	ctx := context.Background()
	now := day.Add(12 * time.Hour)

	ap := f.book(t, day.Add(8*time.Hour), domain.StatusConfirmed)

	first, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	second, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)

	from, err := domain.Transition(first, domain.ActionComplete, now)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateAppointmentStatus(ctx, first, from))

	// the second writer read the same confirmed row and loses
	from, err = domain.Transition(second, domain.ActionCancel, now)
	require.NoError(t, err)
	err = repo.UpdateAppointmentStatus(ctx, second, from)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	stored, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
	require.NotNil(t, stored.StatusChangedAt)
	assert.True(t, stored.StatusChangedAt.Equal(now))

	_, err = repo.GetAppointment(ctx, 999)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestScheduleRepository(t *testing.T) {
	f := newFixture(t)
	repo := NewCatalogueRepository(f.store)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceWorkSchedules(ctx, []models.WorkSchedule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true},
		{DayOfWeek: 0, StartTime: "10:00", EndTime: "12:00", IsActive: false},
	}))
	require.NoError(t, repo.ReplaceWorkSchedules(ctx, []models.WorkSchedule{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "13:00", IsActive: true},
	}))

	all, err := repo.ListAllWorkSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].DayOfWeek)

	byDay, err := NewAppointmentRepository(f.store).ListWorkSchedules(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, byDay, 1)

	require.NoError(t, repo.UpsertOverride(ctx, &models.ScheduleOverride{Date: "2025-12-24", StartTime: "09:00", EndTime: "12:00", IsActive: true}))
	require.NoError(t, repo.UpsertOverride(ctx, &models.ScheduleOverride{Date: "2025-12-24", IsActive: false}))
	require.NoError(t, repo.UpsertOverride(ctx, &models.ScheduleOverride{Date: "2025-01-01", IsActive: false}))

	overrides, err := repo.ListOverridesFrom(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.False(t, overrides[0].IsActive)

	dayOverrides, err := NewAppointmentRepository(f.store).ListOverrides(ctx, "2025-12-24")
	require.NoError(t, err)
	assert.Len(t, dayOverrides, 1)
}

func TestServiceCatalogue(t *testing.T) {
	f := newFixture(t)
	repo := NewCatalogueRepository(f.store)
	ctx := context.Background()

	require.NoError(t, repo.CreateService(ctx, &models.Service{Name: "Barbă", DurationMinutes: 20, Price: 30}))
	require.NoError(t, repo.UpdateService(ctx, f.service.ID, map[string]any{"price": 70.0}))

	list, err := repo.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Barbă", list[0].Name)
	assert.Equal(t, 70.0, list[1].Price)

	err = repo.UpdateService(ctx, 999, map[string]any{"price": 1.0})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
}

func TestProfileRepository(t *testing.T) {
	f := newFixture(t)
	repo := NewProfileRepository(f.store)
	ctx := context.Background()

	admin := models.Profile{ID: uuid.New(), FullName: strPtr("Zoe Admin"), IsAdmin: true}
	require.NoError(t, f.store.Insert(ctx, tableProfiles, &admin))
	other := models.Profile{ID: uuid.New(), FullName: strPtr("Bogdan Ionescu")}
	require.NoError(t, f.store.Insert(ctx, tableProfiles, &other))

	clients, err := repo.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Ana Pop", *clients[0].FullName)

	require.NoError(t, repo.UpdateProfile(ctx, f.client.ID, map[string]any{"notes": "preferă dimineața"}))
	p, err := repo.GetProfile(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, "preferă dimineața", *p.Notes)

	err = repo.UpdateProfile(ctx, uuid.New(), map[string]any{"notes": "x"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeClientNotFound))

	n, err := repo.CountNewClients(ctx, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	f.book(t, day.Add(8*time.Hour), domain.StatusCompleted)
	apps, err := repo.ListUserAppointments(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.NotNil(t, apps[0].Service)
}

func TestAuditLogRepositoryNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, action := range []string{"a", "b", "c"} {
		require.NoError(t, f.store.Insert(ctx, tableAuditLogs, &models.AuditLog{Action: action}))
	}

	rows, err := NewAuditLogRepository(f.store).List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c", rows[0].Action)
}
