package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/realtime"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// Booking channels, used as the metrics label and in audit metadata.
const (
	ChannelWeb   = "web"
	ChannelChat  = "chat"
	ChannelAdmin = "admin"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID    string
	ClientName  string
	ClientPhone string

	Date string // YYYY-MM-DD
	Time string // HH:mm

	Channel string
	ActorID string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	availability *GetAvailability
	store        domain.AppointmentStore
	audit        audit.Sink
	events       realtime.Publisher
	metrics      *metrics.Metrics
}

func NewCreateAppointment(
	availability *GetAvailability,
	store domain.AppointmentStore,
	audit audit.Sink,
	events realtime.Publisher,
	m *metrics.Metrics,
) *CreateAppointment {
	return &CreateAppointment{
		availability: availability,
		store:        store,
		audit:        audit,
		events:       events,
		metrics:      m,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Client
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	if !validators.IsValidName(name) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidName)
	}
	if !validators.IsValidPhone(in.ClientPhone) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidPhone)
	}

	// --------------------------------------------------
	// Date / time
	// --------------------------------------------------
	tod, err := domain.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}
	if _, err := domain.ParseDate(in.Date, uc.availability.now().Location()); err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	// --------------------------------------------------
	// The slot must be offered and free right now
	// --------------------------------------------------
	barber, err := uc.availability.barbers.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	avail, err := uc.availability.forBarber(ctx, barber, in.Date)
	if err != nil {
		return nil, err
	}

	slot, ok := domain.FindSlot(avail.Slots, tod.String())
	if !ok || !slot.Available {
		return nil, httperr.ErrBusiness(domain.CodeSlotUnavailable)
	}

	// --------------------------------------------------
	// Commit (the store arbitrates concurrent bookings)
	// --------------------------------------------------
	ap := &models.Appointment{
		BarberID:        barber.ID,
		ClientName:      name,
		ClientPhone:     validators.NormalizePhone(in.ClientPhone),
		AppointmentDate: avail.Date,
		AppointmentTime: slot.Time,
		Status:          string(domain.InitialStatus()),
	}

	if err := uc.store.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, domain.CodeSlotTaken) {
			uc.metrics.SlotConflict()
			uc.audit.Dispatch(audit.Event{
				ActorID: audit.Ptr(in.ActorID),
				Action:  "appointment_conflict",
				Entity:  "appointment",
				Metadata: map[string]string{
					"barber_id": ap.BarberID,
					"date":      ap.AppointmentDate,
					"time":      ap.AppointmentTime,
					"channel":   in.Channel,
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// Side effects
	// --------------------------------------------------
	uc.metrics.BookingCreated(channelOrDefault(in.Channel))
	uc.events.SlotsChanged(ap.BarberID, ap.AppointmentDate)
	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(in.ActorID),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]string{
			"barber_id": ap.BarberID,
			"date":      ap.AppointmentDate,
			"time":      ap.AppointmentTime,
			"channel":   channelOrDefault(in.Channel),
		},
	})

	ap.Barber = barber
	return ap, nil
}

func channelOrDefault(ch string) string {
	if ch == "" {
		return ChannelWeb
	}
	return ch
}
