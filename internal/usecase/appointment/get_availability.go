package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type Availability struct {
	Date    string            `json:"date"`
	WorkDay bool              `json:"work_day"`
	Slots   []domain.TimeSlot `json:"slots"`
}

type GetAvailability struct {
	barbers      domain.BarberRegistry
	appointments domain.AppointmentStore
	now          timezone.Clock
}

func NewGetAvailability(
	barbers domain.BarberRegistry,
	appointments domain.AppointmentStore,
	now timezone.Clock,
) *GetAvailability {
	return &GetAvailability{
		barbers:      barbers,
		appointments: appointments,
		now:          now,
	}
}

// Execute lists the slots of one barber on one date (YYYY-MM-DD, shop
// timezone). Store failures are returned as is and no slots are generated.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	barberID string,
	date string,
) (*Availability, error) {

	barber, err := uc.barbers.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	return uc.forBarber(ctx, barber, date)
}

func (uc *GetAvailability) forBarber(
	ctx context.Context,
	barber *models.Barber,
	date string,
) (*Availability, error) {

	// --------------------------------------------------
	// Schedule
	// --------------------------------------------------
	schedule, err := domain.ScheduleFromBarber(barber)
	if err != nil {
		return nil, err
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Date in the shop timezone
	// --------------------------------------------------
	now := uc.now()
	day, err := domain.ParseDate(date, now.Location())
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDate)
	}

	out := &Availability{
		Date:  domain.FormatDate(day),
		Slots: []domain.TimeSlot{},
	}

	if !domain.IsWorkDay(day, schedule.WorkDays) {
		return out, nil
	}
	out.WorkDay = true

	// --------------------------------------------------
	// Occupancy
	// --------------------------------------------------
	booked, err := uc.appointments.ListAppointments(ctx, barber.ID, out.Date)
	if err != nil {
		return nil, err
	}

	out.Slots = domain.GenerateSlots(schedule, domain.ToExisting(booked), day, now)
	return out, nil
}
