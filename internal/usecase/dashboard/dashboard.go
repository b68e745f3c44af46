// Package dashboard assembles the admin overview of a day.
package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/ora-fixa/internal/domain/actor"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
)

type Reader interface {
	ListAppointmentsForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
	CountNewClients(ctx context.Context, start, end time.Time) (int64, error)
	ListClients(ctx context.Context) ([]models.Profile, error)
	ListServices(ctx context.Context) ([]models.Service, error)
}

type View struct {
	Date          string               `json:"currentDate"`
	Appointments  []models.Appointment `json:"appointments"`
	KPIs          KPIs                 `json:"kpis"`
	WeeklyRevenue []DayRevenue         `json:"weeklyRevenue"`
	Clients       []models.Profile     `json:"clients"`
	Services      []models.Service     `json:"services"`
}

type Load struct {
	reader Reader
	loc    *time.Location
}

func NewLoad(reader Reader, loc *time.Location) *Load {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	return &Load{reader: reader, loc: loc}
}

// Execute reads everything in parallel; the reads are not one consistent
// snapshot.
func (uc *Load) Execute(ctx context.Context, who actor.Actor, date time.Time) (*View, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}

	day := timezone.StartOfDay(date, uc.loc)
	prevDay := day.AddDate(0, 0, -7)

	var (
		apps       []models.Appointment
		newClients [2]int64
		clients    []models.Profile
		services   []models.Service
	)

	g, gctx := errgroup.WithContext(ctx)

	// one range covers the weekly chart and last week's KPI day
	g.Go(func() (err error) {
		apps, err = uc.reader.ListAppointmentsForPeriod(gctx, prevDay.UTC(), day.AddDate(0, 0, 1).UTC())
		return err
	})
	g.Go(func() (err error) {
		newClients[0], err = uc.reader.CountNewClients(gctx, day.UTC(), day.AddDate(0, 0, 1).UTC())
		return err
	})
	g.Go(func() (err error) {
		newClients[1], err = uc.reader.CountNewClients(gctx, prevDay.UTC(), prevDay.AddDate(0, 0, 1).UTC())
		return err
	})
	g.Go(func() (err error) {
		clients, err = uc.reader.ListClients(gctx)
		return err
	})
	g.Go(func() (err error) {
		services, err = uc.reader.ListServices(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if clients == nil {
		clients = []models.Profile{}
	}
	if services == nil {
		services = []models.Service{}
	}

	return &View{
		Date:          day.Format(timezone.DateLayout),
		Appointments:  OnDay(apps, day, uc.loc),
		KPIs:          ComputeKPIs(apps, day, uc.loc, newClients),
		WeeklyRevenue: WeeklyRevenue(apps, day, uc.loc),
		Clients:       clients,
		Services:      services,
	}, nil
}
