package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/realtime"
)

type DeleteAppointment struct {
	store  domain.AppointmentStore
	audit  audit.Sink
	events realtime.Publisher
}

func NewDeleteAppointment(
	store domain.AppointmentStore,
	audit audit.Sink,
	events realtime.Publisher,
) *DeleteAppointment {
	return &DeleteAppointment{store: store, audit: audit, events: events}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id string, actorID string) error {
	ap, err := uc.store.GetAppointment(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.store.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	if domain.Status(ap.Status).Occupies() {
		uc.events.SlotsChanged(ap.BarberID, ap.AppointmentDate)
	}
	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(actorID),
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]string{
			"client_name": ap.ClientName,
			"date":        ap.AppointmentDate,
			"time":        ap.AppointmentTime,
		},
	})
	return nil
}
