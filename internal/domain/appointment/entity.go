package appointment

import (
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCanceled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	return nil
}

// ToExisting projects stored appointments onto the generator input.
func ToExisting(aps []models.Appointment) []ExistingAppointment {
	out := make([]ExistingAppointment, 0, len(aps))
	for _, ap := range aps {
		out = append(out, ExistingAppointment{
			BarberID: ap.BarberID,
			Date:     ap.AppointmentDate,
			Time:     ap.AppointmentTime,
			Status:   Status(ap.Status),
		})
	}
	return out
}
