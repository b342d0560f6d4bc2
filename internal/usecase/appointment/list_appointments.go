package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type ListAppointments struct {
	store domain.AppointmentStore
}

func NewListAppointments(store domain.AppointmentStore) *ListAppointments {
	return &ListAppointments{store: store}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]dto.AppointmentListDTO, error) {

	if filter.Date != "" {
		if _, err := domain.ParseDate(filter.Date, time.UTC); err != nil {
			return nil, httperr.ErrBusiness(domain.CodeInvalidDate)
		}
	}
	if filter.Status != "" && !domain.Status(filter.Status).Valid() {
		return nil, httperr.ErrBusiness(domain.CodeInvalidStatus)
	}

	aps, err := uc.store.SearchAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewAppointmentList(aps), nil
}
