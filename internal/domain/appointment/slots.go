package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/ora-fixa/internal/models"
	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
)

type SlotInput struct {
	// Date is any instant on the requested day, expressed in the salon's
	// location.
	Date     time.Time
	Duration time.Duration
	// Step spaces candidate starts; zero means Duration.
	Step time.Duration

	Schedules    []models.WorkSchedule
	Overrides    []models.ScheduleOverride
	Appointments []models.Appointment

	// Now drops candidates that already started; zero keeps them all.
	Now time.Time
}

// ComputeAvailableSlots lists the bookable start times of a day, ascending.
func ComputeAvailableSlots(in SlotInput) []TimeSlot {
	slots := []TimeSlot{}
	if in.Duration <= 0 {
		return slots
	}

	step := in.Step
	if step <= 0 {
		step = in.Duration
	}

	day := dayOf(in.Date)
	windows := MergeWindows(ResolveWindows(day, in.Schedules, in.Overrides))

	for _, w := range windows {
		for cur := w.Start; !cur.Add(in.Duration).After(w.End); cur = cur.Add(step) {
			end := cur.Add(in.Duration)

			if !in.Now.IsZero() && cur.Before(in.Now) {
				continue
			}
			if conflicts(cur, end, in.Appointments) {
				continue
			}

			slots = append(slots, newSlot(cur, end, day.Location()))
		}
	}

	return slots
}

// ResolveWindows picks the day's raw windows: a closed override empties the
// day, open overrides replace the weekly rows, otherwise the active weekly
// rows for the weekday apply.
func ResolveWindows(
	date time.Time,
	schedules []models.WorkSchedule,
	overrides []models.ScheduleOverride,
) []Window {
	day := dayOf(date)
	key := day.Format(timezone.DateLayout)

	var fromOverrides []Window
	overridden := false
	for _, o := range overrides {
		if o.Date != key {
			continue
		}
		if !o.IsActive {
			return nil
		}
		overridden = true
		if w, ok := window(day, o.StartTime, o.EndTime); ok {
			fromOverrides = append(fromOverrides, w)
		}
	}
	if overridden {
		return fromOverrides
	}

	weekday := int(day.Weekday())
	var out []Window
	for _, s := range schedules {
		if !s.IsActive || s.DayOfWeek != weekday {
			continue
		}
		if w, ok := window(day, s.StartTime, s.EndTime); ok {
			out = append(out, w)
		}
	}
	return out
}

// MergeWindows sorts windows and folds overlapping or touching ones together.
func MergeWindows(ws []Window) []Window {
	if len(ws) == 0 {
		return nil
	}

	sorted := make([]Window, len(ws))
	copy(sorted, ws)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Window{sorted[0]}
	for _, w := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !w.Start.After(last.End) {
			if w.End.After(last.End) {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// Overlaps is the half-open interval test: [a,b) ∩ [c,d) ≠ ∅.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FilterPast drops slots starting before now.
func FilterPast(slots []TimeSlot, now time.Time) []TimeSlot {
	out := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.StartsAt.Before(now) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ContainsStart reports whether a slot begins exactly at start.
func ContainsStart(slots []TimeSlot, start time.Time) bool {
	for _, s := range slots {
		if s.StartsAt.Equal(start) {
			return true
		}
	}
	return false
}

// Blocking reports whether any live appointment overlaps [start, end).
func Blocking(start, end time.Time, appointments []models.Appointment) bool {
	return conflicts(start, end, appointments)
}

func conflicts(start, end time.Time, appointments []models.Appointment) bool {
	for _, ap := range appointments {
		st, ok := ParseStatus(ap.Status)
		if ok && !st.Blocks() {
			continue
		}
		if Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true
		}
	}
	return false
}

func window(day time.Time, start, end string) (Window, bool) {
	s, err := timezone.At(day, start)
	if err != nil {
		return Window{}, false
	}
	e, err := timezone.At(day, end)
	if err != nil || !e.After(s) {
		return Window{}, false
	}
	return Window{Start: s, End: e}, true
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func newSlot(start, end time.Time, loc *time.Location) TimeSlot {
	return TimeSlot{
		Start:    start.In(loc).Format(timezone.ClockLayout),
		End:      end.In(loc).Format(timezone.ClockLayout),
		StartsAt: start,
		EndsAt:   end,
	}
}
