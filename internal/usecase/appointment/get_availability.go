package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/ora-fixa/internal/cache"
	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
)

type GetAvailability struct {
	Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{Deps: deps.withDefaults()}
}

// Execute lists the free starts of in.Date for the service, ascending,
// excluding starts already in the past.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	svc, err := uc.Repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	day := timezone.StartOfDay(in.Date, uc.Location)
	key := cache.SlotKey{
		Date:      day.Format(timezone.DateLayout),
		ServiceID: svc.ID,
		Step:      uc.Step,
	}

	slots, hit, err := uc.Cache.Get(ctx, key)
	switch {
	case err != nil:
		uc.Metrics.ObserveSlotCache("error")
		uc.Log.Warn("slot cache read failed", zap.String("key", key.String()), zap.Error(err))
	case hit:
		uc.Metrics.ObserveSlotCache("hit")
	default:
		uc.Metrics.ObserveSlotCache("miss")
	}

	if !hit {
		// taken before the reads so a booking landing meanwhile voids the write
		version, verr := uc.Cache.Version(ctx, key.Date)

		slots, err = uc.daySlots(ctx, day, svc)
		if err != nil {
			return nil, err
		}

		if verr != nil {
			uc.Log.Warn("slot cache version read failed", zap.String("date", key.Date), zap.Error(verr))
		} else if err := uc.Cache.Set(ctx, key, version, slots); err != nil {
			uc.Log.Warn("slot cache write failed", zap.String("key", key.String()), zap.Error(err))
		}
	}

	free := domain.FilterPast(slots, uc.Now())
	uc.Metrics.ObserveSlotsServed(len(free))
	return free, nil
}
