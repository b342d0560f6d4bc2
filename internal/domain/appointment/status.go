package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCanceled  Status = "canceled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCanceled, StatusCompleted:
		return true
	}
	return false
}

// Occupies reports whether an appointment in this status blocks its slot.
func (s Status) Occupies() bool {
	return s == StatusScheduled
}

// ===============================
// Validations
// ===============================

// CanCancel: only scheduled appointments can be canceled
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(CodeInvalidState)
	}
	return nil
}

// CanComplete: only scheduled appointments can be completed
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
