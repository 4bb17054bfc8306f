package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	placeDomain "github.com/davicafu/hexaplaces/internal/place/domain"
	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
	"github.com/davicafu/hexaplaces/tests/mocks"
)

type fixture struct {
	repo    *mocks.InMemoryPlaceRepo
	cache   *mocks.DummyCache
	events  *mocks.DummyPublisher
	storage *mocks.InMemoryImageStorage
	service *PlaceService
}

func newFixture() *fixture {
	f := &fixture{
		repo:    mocks.NewInMemoryPlaceRepo(),
		cache:   mocks.NewDummyCache(),
		events:  &mocks.DummyPublisher{},
		storage: mocks.NewInMemoryImageStorage(),
	}
	f.service = NewPlaceService(f.repo, f.cache, f.events, f.storage, time.Minute, zap.NewNop())
	return f
}

func sampleInput() CreatePlaceInput {
	return CreatePlaceInput{
		Title:       "Empire State Building",
		Description: "One of the most famous sky scrapers in the world",
		Address:     "20 W 34th St, New York, NY 10001",
		Location:    placeDomain.Location{Lat: 40.7484405, Lng: -73.9878584},
		CreatorID:   primitive.NewObjectID(),
	}
}

func TestCreatePlace_Success(t *testing.T) {
	f := newFixture()

	place, err := f.service.CreatePlace(context.Background(), sampleInput(), &placeDomain.ImageUpload{
		Filename: "empire.png",
		Content:  strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, "/uploads/empire.png", place.ImageURL)
	assert.Contains(t, f.repo.Places, place.ID)
	assert.Equal(t, []string{placeDomain.PlaceCreated}, f.events.Types())
	assert.Equal(t, place.ID.Hex(), f.events.Events[0].Key)

	assert.Eventually(t, func() bool {
		return f.cache.Has("place:" + place.ID.Hex())
	}, time.Second, 5*time.Millisecond)
}

func TestCreatePlace_ImageRejected(t *testing.T) {
	f := newFixture()
	f.storage.SaveErr = errors.New("only JPEG and PNG images are allowed")

	_, err := f.service.CreatePlace(context.Background(), sampleInput(), &placeDomain.ImageUpload{
		Filename: "notes.txt",
		Content:  strings.NewReader("text"),
	})
	assert.Error(t, err)
	assert.Empty(t, f.repo.Places)
	assert.Empty(t, f.events.Events)
}

func TestGetPlace_NotFoundIsNotRetried(t *testing.T) {
	f := newFixture()

	start := time.Now()
	_, err := f.service.GetPlace(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, placeDomain.ErrPlaceNotFound)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestGetPlace_FromCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cached := placeDomain.NewPlace("Cached place title", "Cached description", "Somewhere 123 street", placeDomain.Location{}, primitive.NewObjectID())
	require.NoError(t, f.cache.Set(ctx, "place:"+cached.ID.Hex(), cached, 0))

	got, err := f.service.GetPlace(ctx, cached.ID)
	require.NoError(t, err)
	assert.Equal(t, cached.Title, got.Title)
}

func TestUpdatePlace(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	place, err := f.service.CreatePlace(ctx, sampleInput(), nil)
	require.NoError(t, err)

	title := "Chrysler Building, Manhattan"
	updated, err := f.service.UpdatePlace(ctx, place.ID, placeDomain.PlacePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, title, f.repo.Places[place.ID].Title)
	assert.Equal(t, []string{placeDomain.PlaceCreated, placeDomain.PlaceUpdated}, f.events.Types())

	_, err = f.service.UpdatePlace(ctx, primitive.NewObjectID(), placeDomain.PlacePatch{Title: &title})
	assert.ErrorIs(t, err, placeDomain.ErrPlaceNotFound)
}

func TestDeletePlace_RemovesImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	place, err := f.service.CreatePlace(ctx, sampleInput(), &placeDomain.ImageUpload{
		Filename: "empire.jpg",
		Content:  strings.NewReader("jpg-bytes"),
	})
	require.NoError(t, err)
	require.True(t, f.storage.Has(place.ImageURL))

	require.NoError(t, f.service.DeletePlace(ctx, place.ID))
	assert.NotContains(t, f.repo.Places, place.ID)
	assert.False(t, f.storage.Has(place.ImageURL))
	assert.Equal(t, placeDomain.PlaceDeleted, f.events.Types()[1])

	assert.ErrorIs(t, f.service.DeletePlace(ctx, place.ID), placeDomain.ErrPlaceNotFound)
}

func TestFindPlaces_FiltersSortsAndPages(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, lat := range []float64{10, 20, 30, 40} {
		in := sampleInput()
		in.Location.Lat = lat
		_, err := f.service.CreatePlace(ctx, in, nil)
		require.NoError(t, err)
	}

	q, err := placeDomain.NewQuerySchema(2).Read(query.RawQuery{
		Sort:    []string{"-createdAt"},
		Filters: map[string][]string{"locationLat": {"gte:15"}},
	})
	require.NoError(t, err)

	places, total, err := f.service.FindPlaces(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, places, 2)
	for _, p := range places {
		assert.GreaterOrEqual(t, p.Location.Lat, 15.0)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	repo := mocks.NewInMemoryPlaceRepo()
	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	service := NewPlaceService(repo, mocks.NewDummyCache(), publisher, nil, time.Minute, zap.NewNop())

	place, err := service.CreatePlace(context.Background(), sampleInput(), nil)
	require.NoError(t, err)
	assert.Contains(t, repo.Places, place.ID)
	publisher.AssertExpectations(t)
}
