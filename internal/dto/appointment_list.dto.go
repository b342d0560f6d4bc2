package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type AppointmentListDTO struct {
	ID          string    `json:"id"`
	BarberID    string    `json:"barber_id"`
	BarberName  string    `json:"barber_name"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:          ap.ID,
		BarberID:    ap.BarberID,
		ClientName:  ap.ClientName,
		ClientPhone: validators.MaskPhone(ap.ClientPhone),
		Date:        ap.AppointmentDate,
		Time:        ap.AppointmentTime,
		Status:      ap.Status,
		CreatedAt:   ap.CreatedAt,
	}
	if ap.Barber != nil {
		out.BarberName = ap.Barber.Name
	}
	return out
}

func NewAppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, NewAppointmentListDTO(ap))
	}
	return out
}
