package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/hexaplaces/internal/shared/events"
	sharedBus "github.com/davicafu/hexaplaces/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/hexaplaces/internal/shared/infra/platform/cache"
	sharedUtils "github.com/davicafu/hexaplaces/internal/shared/infra/utils"
	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
	"github.com/davicafu/hexaplaces/internal/user/domain"
)

// UserService define los casos de uso relacionados con User.
type UserService struct {
	repo     domain.UserRepository
	cache    sharedCache.Cache
	events   sharedBus.EventBus
	storage  domain.ImageStorage
	cacheTTL time.Duration
	log      *zap.Logger
}

// NewUserService constructor
func NewUserService(
	repo domain.UserRepository,
	cache sharedCache.Cache,
	events sharedBus.EventBus,
	storage domain.ImageStorage,
	cacheTTL time.Duration,
	log *zap.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		cache:    cache,
		events:   events,
		storage:  storage,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

type CreateUserInput struct {
	Name    string
	Email   string
	IsAdmin bool
}

func cacheKey(id primitive.ObjectID) string {
	return sharedCache.Key(domain.CacheEntity, id.Hex())
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput, image *domain.ImageUpload) (*domain.User, error) {
	user := domain.NewUser(in.Name, in.Email, in.IsAdmin)

	if image != nil && s.storage != nil {
		url, err := s.storage.Save(ctx, image.Filename, image.Content)
		if err != nil {
			return nil, fmt.Errorf("saving user image: %w", err)
		}
		user.ImageURL = url
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrUserAlreadyExists) {
			s.log.Error("Failed to create user", zap.Error(err))
		}
		s.discardImage(user.ImageURL)
		return nil, err
	}

	sharedCache.AsyncCacheSet(s.cache, cacheKey(user.ID), user, s.cacheTTL, s.log)
	s.publish(ctx, domain.UserCreated, user.ID, user)

	return user, nil
}

// GetUser obtiene un usuario (primero intenta desde cache).
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	// 1. Intentar cache
	if s.cache != nil {
		var u domain.User
		if ok, _ := s.cache.Get(ctx, cacheKey(id), &u); ok {
			return &u, nil
		}
	}

	// 2. Ir al repo con reintentos (un "no encontrado" no se reintenta)
	var user *domain.User
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, isNotFound, func() error {
		var err error
		user, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 3. Actualizar cache en background sin bloquear la respuesta
	sharedCache.AsyncCacheSet(s.cache, cacheKey(id), user, s.cacheTTL, s.log)
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id primitive.ObjectID, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Patch(patch)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheDelete(s.cache, cacheKey(id), s.log)
	s.publish(ctx, domain.UserUpdated, id, user)

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.discardImage(user.ImageURL)
	sharedCache.AsyncCacheDelete(s.cache, cacheKey(id), s.log)
	s.publish(ctx, domain.UserDeleted, id, map[string]string{"id": id.Hex()})

	return nil
}

// FindUsers devuelve una página de usuarios y el total que cumple los filtros.
func (s *UserService) FindUsers(ctx context.Context, q *query.FindQuery) ([]*domain.User, int64, error) {
	return s.repo.Find(ctx, q)
}

// --- Helpers ---

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound)
}

func (s *UserService) publish(ctx context.Context, eventType string, id primitive.ObjectID, data interface{}) {
	if s.events == nil {
		return
	}
	evt, err := sharedEvents.NewIntegrationEvent(eventType, id.Hex(), data)
	if err == nil {
		err = s.events.Publish(ctx, evt)
	}
	if err != nil {
		s.log.Warn("Failed to publish user event",
			zap.String("type", eventType),
			zap.String("user_id", id.Hex()),
			zap.Error(err),
		)
	}
}

func (s *UserService) discardImage(url string) {
	if url == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(context.Background(), url); err != nil {
		s.log.Warn("Failed to delete user image", zap.String("url", url), zap.Error(err))
	}
}
