package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/hexaplaces/internal/shared/events"
	sharedCache "github.com/davicafu/hexaplaces/internal/shared/infra/platform/cache"
	sharedUtils "github.com/davicafu/hexaplaces/internal/shared/infra/utils"
)

// aggregateRef es lo mínimo que se lee del payload cuando el sobre no trae clave.
type aggregateRef struct {
	ID string `json:"id"`
}

// CacheInvalidator borra de la caché la entrada del agregado afectado por cada
// evento cuyo registro declara CacheEntity.
type CacheInvalidator struct {
	cache    sharedCache.Cache
	registry sharedEvents.Registry
	log      *zap.Logger
}

var _ MessageHandler = (*CacheInvalidator)(nil)

func NewCacheInvalidator(cache sharedCache.Cache, registry sharedEvents.Registry, log *zap.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, registry: registry, log: log}
}

func (h *CacheInvalidator) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		h.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	meta, ok := h.registry[base.Type]
	if !ok {
		h.log.Warn("Unknown event type", zap.String("type", base.Type))
		return
	}
	if meta.CacheEntity == "" {
		return
	}

	id := base.Key
	if id == "" {
		sharedUtils.UnmarshalAndHandle(h.log, base.Data, func(ref aggregateRef) { id = ref.ID })
	}
	if id == "" {
		h.log.Warn("Event without aggregate id", zap.String("type", base.Type))
		return
	}

	cacheKey := sharedCache.Key(meta.CacheEntity, id)
	if err := h.cache.Delete(ctx, cacheKey); err != nil {
		h.log.Warn("Cache invalidation failed", zap.String("key", cacheKey), zap.Error(err))
		return
	}
	h.log.Debug("Cache entry invalidated", zap.String("key", cacheKey), zap.String("event", base.Type))
}
