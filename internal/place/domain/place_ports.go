package domain

import (
	"context"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrInvalidID     = errors.New("invalid place id")
)

// ---------- Interfaces (Ports) ----------

type PlaceRepository interface {
	Create(ctx context.Context, p *Place) error

	// Debe devolver ErrPlaceNotFound si no existe.
	GetByID(ctx context.Context, id primitive.ObjectID) (*Place, error)

	// Debe devolver ErrPlaceNotFound si no existe.
	Update(ctx context.Context, p *Place) error

	// Debe devolver ErrPlaceNotFound si no existe.
	DeleteByID(ctx context.Context, id primitive.ObjectID) error

	// Find devuelve la página pedida y el total de lugares que cumplen los filtros.
	Find(ctx context.Context, q *query.FindQuery) ([]*Place, int64, error)
}

// ImageStorage guarda la imagen de un lugar y devuelve su URL pública.
type ImageStorage interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// ImageUpload es un fichero recibido junto al lugar.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ParseID convierte el id de la ruta.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := query.ParseObjectID(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// ---------- Helpers comunes (cache keys, etc.) ----------

const CacheEntity = "place"
