package mocks

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
	userDomain "github.com/davicafu/hexaplaces/internal/user/domain"
)

// InMemoryUserRepo simula UserRepository con email único.
type InMemoryUserRepo struct {
	Users map[primitive.ObjectID]*userDomain.User
	mu    sync.Mutex
}

var _ userDomain.UserRepository = (*InMemoryUserRepo)(nil)

func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{Users: make(map[primitive.ObjectID]*userDomain.User)}
}

func (r *InMemoryUserRepo) emailTaken(email string, except primitive.ObjectID) bool {
	for id, u := range r.Users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (r *InMemoryUserRepo) Create(ctx context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Users[u.ID]; ok || r.emailTaken(u.Email, u.ID) {
		return userDomain.ErrUserAlreadyExists
	}
	cp := *u
	r.Users[u.ID] = &cp
	return nil
}

func (r *InMemoryUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return nil, userDomain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *InMemoryUserRepo) Update(ctx context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Users[u.ID]; !ok {
		return userDomain.ErrUserNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return userDomain.ErrUserAlreadyExists
	}
	cp := *u
	r.Users[u.ID] = &cp
	return nil
}

func (r *InMemoryUserRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Users[id]; !ok {
		return userDomain.ErrUserNotFound
	}
	delete(r.Users, id)
	return nil
}

func (r *InMemoryUserRepo) Find(ctx context.Context, q *query.FindQuery) ([]*userDomain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*userDomain.User
	for _, u := range r.Users {
		if matchesFilters(userValues(u), q.Filters) {
			cp := *u
			matched = append(matched, &cp)
		}
	}
	return sortAndPage(matched, q, userValues), int64(len(matched)), nil
}

func userValues(u *userDomain.User) map[string]interface{} {
	return map[string]interface{}{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"isAdmin":   u.IsAdmin,
		"createdAt": u.CreatedAt,
	}
}
