package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// AppointmentFilter narrows admin listings; empty fields match everything.
type AppointmentFilter struct {
	Date     string
	BarberID string
	Status   string
}

type AuditFilter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

type BarberRegistry interface {
	ListBarbers(ctx context.Context) ([]models.Barber, error)

	GetBarber(
		ctx context.Context,
		id string,
	) (*models.Barber, error)

	CreateBarber(ctx context.Context, b *models.Barber) error
	UpdateBarber(ctx context.Context, b *models.Barber) error
	DeleteBarber(ctx context.Context, id string) error
}

type AppointmentStore interface {
	// -------- Availability --------
	// scheduled appointments of one barber on one date
	ListAppointments(
		ctx context.Context,
		barberID string,
		date string,
	) ([]models.Appointment, error)

	// -------- Admin --------
	SearchAppointments(
		ctx context.Context,
		filter AppointmentFilter,
	) ([]models.Appointment, error)

	CountAppointments(
		ctx context.Context,
		filter AppointmentFilter,
	) (int64, error)

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// -------- Commit --------
	// fails with CodeSlotTaken when the (barber, date, time) slot already
	// holds a scheduled appointment
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// moves id from one status to another; fails with CodeInvalidState
	// when the stored status is no longer from
	UpdateAppointmentStatus(
		ctx context.Context,
		id string,
		from Status,
		to Status,
	) (*models.Appointment, error)

	DeleteAppointment(ctx context.Context, id string) error
}

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	CountUsers(ctx context.Context) (int64, error)
}

type AuditStore interface {
	SaveAuditLog(ctx context.Context, entry *models.AuditLog) error
	ListAuditLogs(ctx context.Context, filter AuditFilter) ([]models.AuditLog, int64, error)
}

type Repository interface {
	BarberRegistry
	AppointmentStore
	UserStore
	AuditStore
}
