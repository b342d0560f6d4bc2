package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *GormRepository) ListAppointments(
	ctx context.Context,
	barberID string,
	date string,
) ([]models.Appointment, error) {

	if !validID(barberID) {
		return []models.Appointment{}, nil
	}

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND appointment_date = ? AND status = ?",
			barberID, date, string(domain.StatusScheduled),
		).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return apps, nil
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (r *GormRepository) SearchAppointments(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]models.Appointment, error) {

	q, err := r.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}

	var apps []models.Appointment
	if err := q.
		Preload("Barber").
		Order("appointment_date DESC").
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("search appointments: %w", err)
	}

	return apps, nil
}

func (r *GormRepository) CountAppointments(
	ctx context.Context,
	filter domain.AppointmentFilter,
) (int64, error) {

	q, err := r.filtered(ctx, filter)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return n, nil
}

// filtered applies the non-empty filter fields as one AND predicate.
func (r *GormRepository) filtered(
	ctx context.Context,
	filter domain.AppointmentFilter,
) (*gorm.DB, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	eq := sq.Eq{}
	if filter.Date != "" {
		eq["appointment_date"] = filter.Date
	}
	if filter.BarberID != "" {
		if !validID(filter.BarberID) {
			return q.Where("1 = 0"), nil
		}
		eq["barber_id"] = filter.BarberID
	}
	if filter.Status != "" {
		eq["status"] = filter.Status
	}
	if len(eq) == 0 {
		return q, nil
	}

	where, args, err := eq.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build appointment filter: %w", err)
	}
	return q.Where(where, args...), nil
}

func (r *GormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	if !validID(id) {
		return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		if notFound(err) {
			return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}

	return &ap, nil
}

// --------------------------------------------------
// Commit
// --------------------------------------------------

// CreateAppointment relies on the partial unique index over scheduled
// (barber, date, time); the losing writer of a race gets CodeSlotTaken.
func (r *GormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}

	if err := r.db.WithContext(ctx).Omit("Barber").Create(ap).Error; err != nil {
		if uniqueViolation(err, slotIndexName) {
			return httperr.ErrBusiness(domain.CodeSlotTaken)
		}
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (r *GormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	id string,
	from domain.Status,
	to domain.Status,
) (*models.Appointment, error) {

	if !validID(id) {
		return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		if uniqueViolation(res.Error, slotIndexName) {
			return nil, httperr.ErrBusiness(domain.CodeSlotTaken)
		}
		return nil, fmt.Errorf("update appointment status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// tell a missing row from a concurrent transition
		if _, err := r.GetAppointment(ctx, id); err != nil {
			return nil, err
		}
		return nil, httperr.ErrBusiness(domain.CodeInvalidState)
	}

	return r.GetAppointment(ctx, id)
}

func (r *GormRepository) DeleteAppointment(ctx context.Context, id string) error {
	if !validID(id) {
		return httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return fmt.Errorf("delete appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}
	return nil
}
