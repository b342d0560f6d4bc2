package barber

import (
	"strings"

	"github.com/lib/pq"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type BarberInput struct {
	Name          string             `json:"name"`
	WorkStartTime string             `json:"work_start_time"`
	WorkEndTime   string             `json:"work_end_time"`
	WorkDays      []int              `json:"work_days"`
	SlotDuration  int                `json:"slot_duration"`
	Breaks        []models.BreakTime `json:"breaks"`
}

// apply validates in and copies it onto b, normalising times to HH:mm and
// filling the slot duration and breaks defaults.
func (in BarberInput) apply(b *models.Barber) error {
	name := strings.TrimSpace(in.Name)
	if !validators.IsValidName(name) {
		return httperr.ErrBusiness(domain.CodeInvalidName)
	}

	candidate := models.Barber{
		WorkStartTime: in.WorkStartTime,
		WorkEndTime:   in.WorkEndTime,
		SlotDuration:  in.SlotDuration,
		Breaks:        in.Breaks,
	}
	for _, d := range in.WorkDays {
		candidate.WorkDays = append(candidate.WorkDays, int64(d))
	}

	schedule, err := domain.ScheduleFromBarber(&candidate)
	if err != nil {
		return err
	}
	if err := schedule.Validate(); err != nil {
		return err
	}

	breaks := make([]models.BreakTime, 0, len(schedule.Breaks))
	for _, br := range schedule.Breaks {
		breaks = append(breaks, models.BreakTime{Start: br.Start.String(), End: br.End.String()})
	}
	days := make(pq.Int64Array, 0, len(schedule.WorkDays))
	for _, d := range schedule.WorkDays {
		days = append(days, int64(d))
	}

	b.Name = name
	b.WorkStartTime = schedule.WorkStart.String()
	b.WorkEndTime = schedule.WorkEnd.String()
	b.WorkDays = days
	b.SlotDuration = schedule.SlotDuration
	b.Breaks = breaks
	return nil
}
