package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	BarberID string  `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_scheduled_slot,where:status = 'scheduled'" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber,omitempty"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`

	// YYYY-MM-DD / HH:mm in the shop timezone
	AppointmentDate string `gorm:"size:10;not null;index;uniqueIndex:idx_appointments_scheduled_slot" json:"appointment_date"`
	AppointmentTime string `gorm:"size:5;not null;uniqueIndex:idx_appointments_scheduled_slot" json:"appointment_time"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
