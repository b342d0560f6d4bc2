package appointment

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type DashboardSummary struct {
	Barbers        int                      `json:"barbers"`
	TodayScheduled int64                    `json:"today_scheduled"`
	ScheduledTotal int64                    `json:"scheduled_total"`
	CompletedTotal int64                    `json:"completed_total"`
	Today          []dto.AppointmentListDTO `json:"today"`
}

type Dashboard struct {
	barbers      domain.BarberRegistry
	appointments domain.AppointmentStore
	now          timezone.Clock
}

func NewDashboard(
	barbers domain.BarberRegistry,
	appointments domain.AppointmentStore,
	now timezone.Clock,
) *Dashboard {
	return &Dashboard{barbers: barbers, appointments: appointments, now: now}
}

func (uc *Dashboard) Execute(ctx context.Context) (*DashboardSummary, error) {
	today := domain.FormatDate(uc.now())
	scheduled := string(domain.StatusScheduled)

	barbers, err := uc.barbers.ListBarbers(ctx)
	if err != nil {
		return nil, err
	}

	out := &DashboardSummary{Barbers: len(barbers)}

	counts := []struct {
		dst    *int64
		filter domain.AppointmentFilter
	}{
		{&out.TodayScheduled, domain.AppointmentFilter{Date: today, Status: scheduled}},
		{&out.ScheduledTotal, domain.AppointmentFilter{Status: scheduled}},
		{&out.CompletedTotal, domain.AppointmentFilter{Status: string(domain.StatusCompleted)}},
	}
	for _, c := range counts {
		n, err := uc.appointments.CountAppointments(ctx, c.filter)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	aps, err := uc.appointments.SearchAppointments(ctx, domain.AppointmentFilter{Date: today})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(aps, func(i, j int) bool {
		return aps[i].AppointmentTime < aps[j].AppointmentTime
	})
	out.Today = dto.NewAppointmentList(aps)

	return out, nil
}
