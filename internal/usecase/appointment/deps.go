package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/ora-fixa/internal/audit"
	"github.com/BruksfildServices01/ora-fixa/internal/cache"
	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
	"github.com/BruksfildServices01/ora-fixa/internal/observability/metrics"
	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

// Deps is what every appointment use case shares.
type Deps struct {
	Repo    domain.Repository
	Cache   cache.SlotCache
	Audit   *audit.Dispatcher
	Metrics *metrics.BookingMetrics
	Log     *zap.Logger

	// Location interprets dates and clock times.
	Location *time.Location
	// Step spaces candidate slot starts; zero means the service duration.
	Step time.Duration
	Now  func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = cache.Nop{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Location == nil {
		d.Location = timezone.Location(timezone.DefaultTimezone)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// daySlots computes the day's slots from fresh reads, without the "now"
// filter. day is midnight in the salon's location.
func (d Deps) daySlots(ctx context.Context, day time.Time, svc *models.Service) ([]domain.TimeSlot, error) {
	schedules, err := d.Repo.ListWorkSchedules(ctx, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	overrides, err := d.Repo.ListOverrides(ctx, day.Format(timezone.DateLayout))
	if err != nil {
		return nil, err
	}

	apps, err := d.Repo.ListAppointmentsForPeriod(ctx, day.UTC(), day.AddDate(0, 0, 1).UTC())
	if err != nil {
		return nil, err
	}

	return domain.ComputeAvailableSlots(domain.SlotInput{
		Date:         day,
		Duration:     svc.Duration(),
		Step:         d.Step,
		Schedules:    schedules,
		Overrides:    overrides,
		Appointments: apps,
	}), nil
}

func (d Deps) invalidate(ctx context.Context, start time.Time) {
	date := start.In(d.Location).Format(timezone.DateLayout)
	if err := d.Cache.InvalidateDate(ctx, date); err != nil {
		d.Log.Warn("slot cache invalidation failed", zap.String("date", date), zap.Error(err))
	}
}

// outcome labels a result for metrics.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := httperr.BusinessCode(err); code != "" {
		return code
	}
	var fe validators.FieldErrors
	if errors.As(err, &fe) {
		return "validation"
	}
	return "store_error"
}
