package domain

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidID         = errors.New("invalid user id")
)

// ---------- Interfaces (Ports) ----------

// UserRepository define las operaciones persistentes para User.
type UserRepository interface {
	// Debe devolver ErrUserAlreadyExists si el email ya está registrado.
	Create(ctx context.Context, u *User) error

	// Debe devolver ErrUserNotFound si no existe.
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)

	// Debe devolver ErrUserNotFound si no existe y ErrUserAlreadyExists si el nuevo email está cogido.
	Update(ctx context.Context, u *User) error

	// Debe devolver ErrUserNotFound si el usuario no existe.
	DeleteByID(ctx context.Context, id primitive.ObjectID) error

	// Find devuelve la página pedida y el total de usuarios que cumplen los filtros.
	Find(ctx context.Context, q *query.FindQuery) ([]*User, int64, error)
}

// ImageStorage guarda el avatar del usuario y devuelve su URL pública.
type ImageStorage interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ---------- Helpers comunes (cache keys, etc.) ----------

const CacheEntity = "user"

func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := query.ParseObjectID(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
