package barber

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type UploadAvatar struct {
	registry domain.BarberRegistry
	objects  storage.ObjectStore
	audit    audit.Sink
}

func NewUploadAvatar(
	registry domain.BarberRegistry,
	objects storage.ObjectStore,
	audit audit.Sink,
) *UploadAvatar {
	return &UploadAvatar{registry: registry, objects: objects, audit: audit}
}

// Execute stores a square WebP version of the upload and points the
// barber's avatar_url at it. Every upload gets a fresh key so browsers
// never serve a stale picture.
func (uc *UploadAvatar) Execute(
	ctx context.Context,
	id string,
	image io.Reader,
	actorID string,
) (*models.Barber, error) {

	b, err := uc.registry.GetBarber(ctx, id)
	if err != nil {
		return nil, err
	}

	webp, err := storage.ProcessAvatar(image)
	switch {
	case errors.Is(err, storage.ErrImageTooBig):
		return nil, httperr.ErrBusiness(domain.CodeImageTooBig)
	case errors.Is(err, storage.ErrInvalidImage):
		return nil, httperr.ErrBusiness(domain.CodeInvalidImage)
	case err != nil:
		return nil, err
	}

	key := fmt.Sprintf("barbers/%s/%s.webp", b.ID, uuid.NewString())
	url, err := uc.objects.Put(ctx, key, webp, "image/webp")
	if err != nil {
		return nil, err
	}

	b.AvatarURL = &url
	if err := uc.registry.UpdateBarber(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ptr(actorID),
		Action:   "barber_avatar_updated",
		Entity:   "barber",
		EntityID: audit.Ptr(b.ID),
	})
	return b, nil
}
