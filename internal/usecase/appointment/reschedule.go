package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type RescheduleInput struct {
	AppointmentID string
	// empty keeps the current barber
	BarberID string
	Date     string
	Time     string
	ActorID  string
}

// Reschedule cancels an appointment and books the same client on another
// slot. When the new booking fails the original is put back; if that also
// fails the caller gets CodeRescheduleLost.
type Reschedule struct {
	store  domain.AppointmentStore
	create *CreateAppointment
	audit  audit.Sink
	log    *zap.Logger
}

func NewReschedule(
	store domain.AppointmentStore,
	create *CreateAppointment,
	audit audit.Sink,
	log *zap.Logger,
) *Reschedule {
	return &Reschedule{
		store:  store,
		create: create,
		audit:  audit,
		log:    log,
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	original, err := uc.store.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanCancel(domain.Status(original.Status)); err != nil {
		return nil, err
	}

	barberID := in.BarberID
	if barberID == "" {
		barberID = original.BarberID
	}

	// --------------------------------------------------
	// Release the old slot so the client may keep it
	// --------------------------------------------------
	if _, err := uc.store.UpdateAppointmentStatus(ctx, original.ID, domain.StatusScheduled, domain.StatusCanceled); err != nil {
		return nil, err
	}

	created, err := uc.create.Execute(ctx, CreateAppointmentInput{
		BarberID:    barberID,
		ClientName:  original.ClientName,
		ClientPhone: original.ClientPhone,
		Date:        in.Date,
		Time:        in.Time,
		Channel:     ChannelAdmin,
		ActorID:     in.ActorID,
	})
	if err != nil {
		if _, restoreErr := uc.store.UpdateAppointmentStatus(ctx, original.ID, domain.StatusCanceled, domain.StatusScheduled); restoreErr != nil {
			uc.log.Error("reschedule: could not restore original appointment",
				zap.String("appointment_id", original.ID),
				zap.Error(restoreErr),
			)
			uc.create.events.SlotsChanged(original.BarberID, original.AppointmentDate)
			uc.audit.Dispatch(audit.Event{
				ActorID:  audit.Ptr(in.ActorID),
				Action:   "appointment_reschedule_lost",
				Entity:   "appointment",
				EntityID: audit.Ptr(original.ID),
				Metadata: map[string]string{
					"date":          original.AppointmentDate,
					"time":          original.AppointmentTime,
					"create_error":  err.Error(),
					"restore_error": restoreErr.Error(),
				},
			})
			return nil, httperr.ErrBusiness(domain.CodeRescheduleLost)
		}
		return nil, err
	}

	uc.create.events.SlotsChanged(original.BarberID, original.AppointmentDate)
	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(in.ActorID),
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: audit.Ptr(created.ID),
		Metadata: map[string]string{
			"from_id":   original.ID,
			"from_date": original.AppointmentDate,
			"from_time": original.AppointmentTime,
		},
	})

	return created, nil
}
