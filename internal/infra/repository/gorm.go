package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

const (
	pgUniqueViolation = "23505"

	slotIndexName = "idx_appointments_scheduled_slot"
	emailIndex    = "idx_users_email"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// uniqueViolation reports whether err is a postgres unique violation,
// optionally restricted to one constraint.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// ids are uuid columns; anything else would make postgres reject the query
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Compile-time check
var _ domain.Repository = (*GormRepository)(nil)
