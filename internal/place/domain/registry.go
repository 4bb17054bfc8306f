package domain

import sharedEvents "github.com/davicafu/hexaplaces/internal/shared/events"

const (
	PlaceCreated = "place.created"
	PlaceUpdated = "place.updated"
	PlaceDeleted = "place.deleted"
)

const PlaceTopic = "place"

// NewEventRegistry declara los eventos de lugares. Las escrituras invalidan la caché.
func NewEventRegistry() sharedEvents.Registry {
	return sharedEvents.Registry{
		PlaceCreated: {Topic: PlaceTopic},
		PlaceUpdated: {Topic: PlaceTopic, CacheEntity: CacheEntity},
		PlaceDeleted: {Topic: PlaceTopic, CacheEntity: CacheEntity},
	}
}
