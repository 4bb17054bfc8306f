package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
	"github.com/davicafu/hexaplaces/internal/user/domain"
	"github.com/davicafu/hexaplaces/tests/mocks"
)

func newService() (*UserService, *mocks.InMemoryUserRepo, *mocks.DummyCache, *mocks.DummyPublisher) {
	repo := mocks.NewInMemoryUserRepo()
	cache := mocks.NewDummyCache()
	events := &mocks.DummyPublisher{}
	service := NewUserService(repo, cache, events, mocks.NewInMemoryImageStorage(), time.Minute, zap.NewNop())
	return service, repo, cache, events
}

func TestCreateUser_Success(t *testing.T) {
	service, repo, cache, events := newService()

	user, err := service.CreateUser(context.Background(), CreateUserInput{Name: "Pepe", Email: "Test@Example.com"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "Pepe", user.Name)
	assert.Contains(t, repo.Users, user.ID)

	assert.Equal(t, []string{domain.UserCreated}, events.Types())
	assert.Equal(t, user.ID.Hex(), events.Events[0].Key)

	assert.Eventually(t, func() bool {
		return cache.Has("user:" + user.ID.Hex())
	}, time.Second, 5*time.Millisecond)
}

func TestCreateUser_WithImage(t *testing.T) {
	service, _, _, _ := newService()

	user, err := service.CreateUser(context.Background(), CreateUserInput{Name: "Pepe", Email: "pepe@example.com"}, &domain.ImageUpload{
		Filename: "avatar.png",
		Content:  strings.NewReader("png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/avatar.png", user.ImageURL)
}

func TestCreateUser_AlreadyExists(t *testing.T) {
	service, repo, _, events := newService()
	ctx := context.Background()

	_, err := service.CreateUser(ctx, CreateUserInput{Name: "Juan", Email: "dup@example.com"}, nil)
	require.NoError(t, err)

	_, err = service.CreateUser(ctx, CreateUserInput{Name: "Otro Juan", Email: "DUP@example.com"}, nil)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	assert.Len(t, repo.Users, 1)
	assert.Len(t, events.Events, 1)
}

func TestGetUser_NotFound(t *testing.T) {
	service, _, _, _ := newService()

	_, err := service.GetUser(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUser_FromRepoThenCache(t *testing.T) {
	service, repo, cache, _ := newService()
	ctx := context.Background()

	u := domain.NewUser("Ana", "ana@example.com", false)
	require.NoError(t, repo.Create(ctx, u))

	got, err := service.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	assert.Eventually(t, func() bool {
		return cache.Has("user:" + u.ID.Hex())
	}, time.Second, 5*time.Millisecond)
}

func TestUpdateUser_Success(t *testing.T) {
	service, repo, cache, events := newService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, CreateUserInput{Name: "Ana", Email: "update@example.com"}, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return cache.Has("user:" + user.ID.Hex()) }, time.Second, 5*time.Millisecond)

	name := "Ana Actualizada"
	updated, err := service.UpdateUser(ctx, user.ID, domain.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, name, repo.Users[user.ID].Name)
	assert.Equal(t, []string{domain.UserCreated, domain.UserUpdated}, events.Types())

	// La escritura invalida la entrada de caché
	assert.Eventually(t, func() bool {
		return !cache.Has("user:" + user.ID.Hex())
	}, time.Second, 5*time.Millisecond)
}

func TestUpdateUser_EmailTaken(t *testing.T) {
	service, _, _, _ := newService()
	ctx := context.Background()

	_, err := service.CreateUser(ctx, CreateUserInput{Name: "Ana", Email: "ana@example.com"}, nil)
	require.NoError(t, err)
	bob, err := service.CreateUser(ctx, CreateUserInput{Name: "Bob", Email: "bob@example.com"}, nil)
	require.NoError(t, err)

	email := "ana@example.com"
	_, err = service.UpdateUser(ctx, bob.ID, domain.UserPatch{Email: &email})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestDeleteUser(t *testing.T) {
	service, repo, _, events := newService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, CreateUserInput{Name: "Ana", Email: "delete@example.com"}, nil)
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(ctx, user.ID))
	assert.Empty(t, repo.Users)
	assert.Equal(t, domain.UserDeleted, events.Types()[1])

	assert.ErrorIs(t, service.DeleteUser(ctx, user.ID), domain.ErrUserNotFound)
}

func TestFindUsers(t *testing.T) {
	service, _, _, _ := newService()
	ctx := context.Background()

	for _, in := range []CreateUserInput{
		{Name: "Ana", Email: "ana@example.com", IsAdmin: true},
		{Name: "Bob", Email: "bob@example.com"},
		{Name: "Carla", Email: "carla@example.com", IsAdmin: true},
	} {
		_, err := service.CreateUser(ctx, in, nil)
		require.NoError(t, err)
	}

	q, err := domain.NewQuerySchema(10).Read(query.RawQuery{
		Sort:    []string{"name"},
		Filters: map[string][]string{"isAdmin": {"true"}},
	})
	require.NoError(t, err)

	users, total, err := service.FindUsers(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana", users[0].Name)
	assert.Equal(t, "Carla", users[1].Name)
}
