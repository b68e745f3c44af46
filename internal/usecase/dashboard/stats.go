package dashboard

import (
	"math"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/ora-fixa/internal/domain/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
)

// KPI is a day's figure next to the same weekday one week earlier.
// ChangePct is nil when the earlier figure is zero.
type KPI struct {
	Count     float64  `json:"count"`
	Previous  float64  `json:"previous"`
	ChangePct *float64 `json:"percentage"`
}

type KPIs struct {
	Revenue    KPI `json:"revenue"`
	NewClients KPI `json:"newClients"`
	NoShows    KPI `json:"noShows"`
}

type DayRevenue struct {
	Date string  `json:"date"`
	Lei  float64 `json:"lei"`
}

type UserStats struct {
	TotalVisits int     `json:"total_visits"`
	TotalSpent  float64 `json:"total_spent"`
}

func newKPI(cur, prev float64) KPI {
	return KPI{Count: cur, Previous: prev, ChangePct: ChangePct(cur, prev)}
}

// ChangePct is the percentage change from prev to cur, one decimal.
func ChangePct(cur, prev float64) *float64 {
	if prev == 0 {
		return nil
	}
	pct := math.Round((cur-prev)/prev*1000) / 10
	return &pct
}

// ComputeKPIs compares day with the same weekday of the previous week. apps
// must cover both days; newClients holds the counts for day and the week
// before, in that order.
func ComputeKPIs(apps []models.Appointment, day time.Time, loc *time.Location, newClients [2]int64) KPIs {
	cur := timezone.StartOfDay(day, loc)
	prev := cur.AddDate(0, 0, -7)

	return KPIs{
		Revenue: newKPI(
			revenueOn(apps, cur, loc),
			revenueOn(apps, prev, loc),
		),
		NewClients: newKPI(float64(newClients[0]), float64(newClients[1])),
		NoShows: newKPI(
			float64(countOn(apps, cur, loc, domain.StatusNoShow)),
			float64(countOn(apps, prev, loc, domain.StatusNoShow)),
		),
	}
}

// WeeklyRevenue lists completed revenue for the seven days ending at day,
// oldest first.
func WeeklyRevenue(apps []models.Appointment, day time.Time, loc *time.Location) []DayRevenue {
	end := timezone.StartOfDay(day, loc)

	out := make([]DayRevenue, 0, 7)
	for i := 6; i >= 0; i-- {
		d := end.AddDate(0, 0, -i)
		out = append(out, DayRevenue{
			Date: d.Format(timezone.DateLayout),
			Lei:  revenueOn(apps, d, loc),
		})
	}
	return out
}

// ComputeUserStats counts completed visits and what they cost.
func ComputeUserStats(apps []models.Appointment) UserStats {
	var s UserStats
	for _, ap := range apps {
		if status(ap) != domain.StatusCompleted {
			continue
		}
		s.TotalVisits++
		if ap.Service != nil {
			s.TotalSpent += ap.Service.Price
		}
	}
	return s
}

// OnDay keeps appointments starting on day, ascending by start.
func OnDay(apps []models.Appointment, day time.Time, loc *time.Location) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range apps {
		if sameDay(ap.StartTime, day, loc) {
			out = append(out, ap)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func revenueOn(apps []models.Appointment, day time.Time, loc *time.Location) float64 {
	var sum float64
	for _, ap := range apps {
		if status(ap) != domain.StatusCompleted || ap.Service == nil {
			continue
		}
		if sameDay(ap.StartTime, day, loc) {
			sum += ap.Service.Price
		}
	}
	return sum
}

func countOn(apps []models.Appointment, day time.Time, loc *time.Location, st domain.Status) int {
	n := 0
	for _, ap := range apps {
		if status(ap) == st && sameDay(ap.StartTime, day, loc) {
			n++
		}
	}
	return n
}

func status(ap models.Appointment) domain.Status {
	st, _ := domain.ParseStatus(ap.Status)
	return st
}

func sameDay(t, day time.Time, loc *time.Location) bool {
	return timezone.StartOfDay(t, loc).Equal(timezone.StartOfDay(day, loc))
}
