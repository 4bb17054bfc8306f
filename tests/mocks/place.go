package mocks

import (
	"context"
	"io"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	placeDomain "github.com/davicafu/hexaplaces/internal/place/domain"
	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

// InMemoryPlaceRepo simula PlaceRepository evaluando los criterios en memoria.
type InMemoryPlaceRepo struct {
	Places map[primitive.ObjectID]*placeDomain.Place
	mu     sync.Mutex
}

var _ placeDomain.PlaceRepository = (*InMemoryPlaceRepo)(nil)

func NewInMemoryPlaceRepo() *InMemoryPlaceRepo {
	return &InMemoryPlaceRepo{Places: make(map[primitive.ObjectID]*placeDomain.Place)}
}

func (r *InMemoryPlaceRepo) Create(ctx context.Context, p *placeDomain.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.Places[p.ID] = &cp
	return nil
}

func (r *InMemoryPlaceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*placeDomain.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Places[id]
	if !ok {
		return nil, placeDomain.ErrPlaceNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *InMemoryPlaceRepo) Update(ctx context.Context, p *placeDomain.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Places[p.ID]; !ok {
		return placeDomain.ErrPlaceNotFound
	}
	cp := *p
	r.Places[p.ID] = &cp
	return nil
}

func (r *InMemoryPlaceRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Places[id]; !ok {
		return placeDomain.ErrPlaceNotFound
	}
	delete(r.Places, id)
	return nil
}

func (r *InMemoryPlaceRepo) Find(ctx context.Context, q *query.FindQuery) ([]*placeDomain.Place, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*placeDomain.Place
	for _, p := range r.Places {
		if matchesFilters(placeValues(p), q.Filters) {
			cp := *p
			matched = append(matched, &cp)
		}
	}
	return sortAndPage(matched, q, placeValues), int64(len(matched)), nil
}

func placeValues(p *placeDomain.Place) map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"address":     p.Address,
		"creatorId":   p.CreatorID,
		"locationLat": p.Location.Lat,
		"locationLng": p.Location.Lng,
		"createdAt":   p.CreatedAt,
	}
}

// InMemoryImageStorage guarda los ficheros en memoria.
type InMemoryImageStorage struct {
	Files   map[string][]byte
	SaveErr error
	mu      sync.Mutex
}

func NewInMemoryImageStorage() *InMemoryImageStorage {
	return &InMemoryImageStorage{Files: make(map[string][]byte)}
}

func (s *InMemoryImageStorage) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if s.SaveErr != nil {
		return "", s.SaveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "/uploads/" + filename
	s.Files[url] = data
	return url, nil
}

func (s *InMemoryImageStorage) Delete(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Files, url)
	return nil
}

func (s *InMemoryImageStorage) Has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Files[url]
	return ok
}
