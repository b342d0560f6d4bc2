package appointment

// Business error codes shared by the stores, use cases and handlers.
const (
	CodeBarberNotFound      = "barber_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeSlotTaken           = "slot_taken"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeInvalidState        = "invalid_state"
	CodeRescheduleLost      = "reschedule_lost"
	CodeInvalidSchedule     = "invalid_schedule"
	CodeInvalidDate         = "invalid_date"
	CodeInvalidDateOrTime   = "invalid_date_or_time"
	CodeInvalidName         = "invalid_name"
	CodeInvalidPhone        = "invalid_phone"
	CodeInvalidStatus       = "invalid_status"
	CodeUserNotFound        = "user_not_found"
	CodeEmailTaken          = "email_taken"
	CodeInvalidImage        = "invalid_image"
	CodeImageTooBig         = "image_too_big"
)
