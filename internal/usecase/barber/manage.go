package barber

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// LIST / GET
// ======================================================

type ListBarbers struct {
	registry domain.BarberRegistry
}

func NewListBarbers(registry domain.BarberRegistry) *ListBarbers {
	return &ListBarbers{registry: registry}
}

func (uc *ListBarbers) Execute(ctx context.Context) ([]models.Barber, error) {
	return uc.registry.ListBarbers(ctx)
}

func (uc *ListBarbers) Get(ctx context.Context, id string) (*models.Barber, error) {
	return uc.registry.GetBarber(ctx, id)
}

// ======================================================
// CREATE
// ======================================================

type CreateBarber struct {
	registry domain.BarberRegistry
	audit    audit.Sink
}

func NewCreateBarber(registry domain.BarberRegistry, audit audit.Sink) *CreateBarber {
	return &CreateBarber{registry: registry, audit: audit}
}

func (uc *CreateBarber) Execute(
	ctx context.Context,
	in BarberInput,
	actorID string,
) (*models.Barber, error) {

	b := &models.Barber{}
	if err := in.apply(b); err != nil {
		return nil, err
	}

	if err := uc.registry.CreateBarber(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(actorID),
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: audit.Ptr(b.ID),
		Metadata: map[string]string{"name": b.Name},
	})
	return b, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateBarber struct {
	registry domain.BarberRegistry
	audit    audit.Sink
}

func NewUpdateBarber(registry domain.BarberRegistry, audit audit.Sink) *UpdateBarber {
	return &UpdateBarber{registry: registry, audit: audit}
}

func (uc *UpdateBarber) Execute(
	ctx context.Context,
	id string,
	in BarberInput,
	actorID string,
) (*models.Barber, error) {

	b, err := uc.registry.GetBarber(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := in.apply(b); err != nil {
		return nil, err
	}

	if err := uc.registry.UpdateBarber(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(actorID),
		Action:   "barber_updated",
		Entity:   "barber",
		EntityID: audit.Ptr(b.ID),
	})
	return b, nil
}

// ======================================================
// DELETE
// ======================================================

// DeleteBarber removes the barber and, with it, every appointment.
type DeleteBarber struct {
	registry domain.BarberRegistry
	audit    audit.Sink
}

func NewDeleteBarber(registry domain.BarberRegistry, audit audit.Sink) *DeleteBarber {
	return &DeleteBarber{registry: registry, audit: audit}
}

func (uc *DeleteBarber) Execute(ctx context.Context, id string, actorID string) error {
	b, err := uc.registry.GetBarber(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.registry.DeleteBarber(ctx, b.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(actorID),
		Action:   "barber_deleted",
		Entity:   "barber",
		EntityID: audit.Ptr(b.ID),
		Metadata: map[string]string{"name": b.Name},
	})
	return nil
}
