package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/realtime"
)

// ChangeStatus moves a scheduled appointment to completed or canceled.
// Both free the slot, so both notify realtime listeners.
type ChangeStatus struct {
	store  domain.AppointmentStore
	audit  audit.Sink
	events realtime.Publisher
}

func NewChangeStatus(
	store domain.AppointmentStore,
	audit audit.Sink,
	events realtime.Publisher,
) *ChangeStatus {
	return &ChangeStatus{
		store:  store,
		audit:  audit,
		events: events,
	}
}

func (uc *ChangeStatus) Complete(
	ctx context.Context,
	id string,
	actorID string,
) (*models.Appointment, error) {
	return uc.apply(ctx, id, actorID, domain.Complete, "appointment_completed")
}

func (uc *ChangeStatus) Cancel(
	ctx context.Context,
	id string,
	actorID string,
) (*models.Appointment, error) {
	return uc.apply(ctx, id, actorID, domain.Cancel, "appointment_canceled")
}

func (uc *ChangeStatus) apply(
	ctx context.Context,
	id string,
	actorID string,
	transition func(*models.Appointment) error,
	action string,
) (*models.Appointment, error) {

	ap, err := uc.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	from := domain.Status(ap.Status)
	if err := transition(ap); err != nil {
		return nil, err
	}

	updated, err := uc.store.UpdateAppointmentStatus(ctx, ap.ID, from, domain.Status(ap.Status))
	if err != nil {
		return nil, err
	}

	uc.events.SlotsChanged(updated.BarberID, updated.AppointmentDate)
	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(actorID),
		Action:   action,
		Entity:   "appointment",
		EntityID: audit.Ptr(updated.ID),
	})

	return updated, nil
}
