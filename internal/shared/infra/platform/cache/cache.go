package cache

import (
	"context"
	"time"
)

// Cache define la interfaz para una caché de clave-valor genérica.
type Cache interface {
	// Get rellena dest (un puntero) si la clave existe. (false, nil) es un miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set serializa val y lo guarda durante ttl. ttl <= 0 usa el TTL por defecto de la implementación.
	Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
}

// Key construye la clave de una entidad: "place:<id>", "user:<id>".
func Key(entity, id string) string {
	return entity + ":" + id
}
