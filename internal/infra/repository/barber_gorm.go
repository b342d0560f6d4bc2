package repository

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *GormRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}
	return barbers, nil
}

func (r *GormRepository) GetBarber(
	ctx context.Context,
	id string,
) (*models.Barber, error) {

	if !validID(id) {
		return nil, httperr.ErrBusiness(domain.CodeBarberNotFound)
	}

	var b models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {
		if notFound(err) {
			return nil, httperr.ErrBusiness(domain.CodeBarberNotFound)
		}
		return nil, fmt.Errorf("get barber: %w", err)
	}
	return &b, nil
}

func (r *GormRepository) CreateBarber(ctx context.Context, b *models.Barber) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create barber: %w", err)
	}
	return nil
}

func (r *GormRepository) UpdateBarber(ctx context.Context, b *models.Barber) error {
	if !validID(b.ID) {
		return httperr.ErrBusiness(domain.CodeBarberNotFound)
	}
	res := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ?", b.ID).
		Select("name", "avatar_url", "work_start_time", "work_end_time", "work_days", "slot_duration", "breaks").
		Updates(b)
	if res.Error != nil {
		return fmt.Errorf("update barber: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(domain.CodeBarberNotFound)
	}
	return nil
}

func (r *GormRepository) DeleteBarber(ctx context.Context, id string) error {
	if !validID(id) {
		return httperr.ErrBusiness(domain.CodeBarberNotFound)
	}
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Barber{})
	if res.Error != nil {
		return fmt.Errorf("delete barber: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(domain.CodeBarberNotFound)
	}
	return nil
}
