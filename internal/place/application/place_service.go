package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	placeDomain "github.com/davicafu/hexaplaces/internal/place/domain"
	sharedEvents "github.com/davicafu/hexaplaces/internal/shared/events"
	sharedBus "github.com/davicafu/hexaplaces/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/hexaplaces/internal/shared/infra/platform/cache"
	sharedUtils "github.com/davicafu/hexaplaces/internal/shared/infra/utils"
	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

// PlaceService define los casos de uso de Place: repositorio, caché, eventos e imágenes.
type PlaceService struct {
	repo     placeDomain.PlaceRepository
	cache    sharedCache.Cache
	events   sharedBus.EventBus
	storage  placeDomain.ImageStorage
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewPlaceService(
	repo placeDomain.PlaceRepository,
	cache sharedCache.Cache,
	events sharedBus.EventBus,
	storage placeDomain.ImageStorage,
	cacheTTL time.Duration,
	log *zap.Logger,
) *PlaceService {
	return &PlaceService{
		repo:     repo,
		cache:    cache,
		events:   events,
		storage:  storage,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	Location    placeDomain.Location
	CreatorID   primitive.ObjectID
}

func cacheKey(id primitive.ObjectID) string {
	return sharedCache.Key(placeDomain.CacheEntity, id.Hex())
}

// CreatePlace guarda el lugar (y su imagen, si llega) y publica place.created.
func (s *PlaceService) CreatePlace(ctx context.Context, in CreatePlaceInput, image *placeDomain.ImageUpload) (*placeDomain.Place, error) {
	place := placeDomain.NewPlace(in.Title, in.Description, in.Address, in.Location, in.CreatorID)

	if image != nil && s.storage != nil {
		url, err := s.storage.Save(ctx, image.Filename, image.Content)
		if err != nil {
			return nil, fmt.Errorf("saving place image: %w", err)
		}
		place.ImageURL = url
	}

	if err := s.repo.Create(ctx, place); err != nil {
		s.log.Error("Failed to create place", zap.Error(err))
		s.discardImage(place.ImageURL)
		return nil, err
	}

	sharedCache.AsyncCacheSet(s.cache, cacheKey(place.ID), place, s.cacheTTL, s.log)
	s.publish(ctx, placeDomain.PlaceCreated, place.ID, place)

	return place, nil
}

// GetPlace lee primero de la caché y, si falla, del repositorio con reintentos.
func (s *PlaceService) GetPlace(ctx context.Context, id primitive.ObjectID) (*placeDomain.Place, error) {
	if s.cache != nil {
		var cached placeDomain.Place
		if ok, _ := s.cache.Get(ctx, cacheKey(id), &cached); ok {
			return &cached, nil
		}
	}

	var place *placeDomain.Place
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, isNotFound, func() error {
		var err error
		place, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheSet(s.cache, cacheKey(id), place, s.cacheTTL, s.log)
	return place, nil
}

// UpdatePlace aplica una actualización parcial y publica place.updated.
func (s *PlaceService) UpdatePlace(ctx context.Context, id primitive.ObjectID, patch placeDomain.PlacePatch) (*placeDomain.Place, error) {
	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	place.Patch(patch)
	if err := s.repo.Update(ctx, place); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheDelete(s.cache, cacheKey(id), s.log)
	s.publish(ctx, placeDomain.PlaceUpdated, id, place)

	return place, nil
}

// DeletePlace borra el lugar y su imagen y publica place.deleted.
func (s *PlaceService) DeletePlace(ctx context.Context, id primitive.ObjectID) error {
	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.discardImage(place.ImageURL)
	sharedCache.AsyncCacheDelete(s.cache, cacheKey(id), s.log)
	s.publish(ctx, placeDomain.PlaceDeleted, id, map[string]string{"id": id.Hex()})

	return nil
}

// FindPlaces devuelve una página de lugares y el total que cumple los filtros.
func (s *PlaceService) FindPlaces(ctx context.Context, q *query.FindQuery) ([]*placeDomain.Place, int64, error) {
	return s.repo.Find(ctx, q)
}

// --- Helpers ---

func isNotFound(err error) bool {
	return errors.Is(err, placeDomain.ErrPlaceNotFound)
}

// publish no falla la operación: la escritura ya está confirmada.
func (s *PlaceService) publish(ctx context.Context, eventType string, id primitive.ObjectID, data interface{}) {
	if s.events == nil {
		return
	}
	evt, err := sharedEvents.NewIntegrationEvent(eventType, id.Hex(), data)
	if err == nil {
		err = s.events.Publish(ctx, evt)
	}
	if err != nil {
		s.log.Warn("Failed to publish place event",
			zap.String("type", eventType),
			zap.String("place_id", id.Hex()),
			zap.Error(err),
		)
	}
}

func (s *PlaceService) discardImage(url string) {
	if url == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(context.Background(), url); err != nil {
		s.log.Warn("Failed to delete place image", zap.String("url", url), zap.Error(err))
	}
}
