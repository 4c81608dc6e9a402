package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// notifier publica eventos de cambio. Es best effort: una falla se registra y la
// mutación, que ya quedó en la caché, no se revierte.
type notifier struct {
	pub repository.ChangePublisher
	log zerolog.Logger
	now func() time.Time
}

func newNotifier(pub repository.ChangePublisher, log zerolog.Logger) notifier {
	return notifier{pub: pub, log: log, now: time.Now}
}

func (n notifier) notify(ctx context.Context, collection, action string, id int64, origin entity.Origin) {
	if n.pub == nil {
		return
	}
	ev := entity.ChangeEvent{
		ID:         uuid.NewString(),
		Collection: collection,
		Action:     action,
		EntityID:   id,
		Origin:     origin,
		At:         n.now().UTC(),
	}
	if err := n.pub.Publish(ctx, ev); err != nil {
		n.log.Warn().Err(err).Str("collection", collection).Str("action", action).
			Int64("entity_id", id).Msg("no se pudo publicar el evento de cambio")
	}
}
