package domain

import sharedEvents "github.com/davicafu/hexaplaces/internal/shared/events"

// Las constantes de los tipos de evento se definen aquí, como valores string.
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

const UserTopic = "user"

func NewEventRegistry() sharedEvents.Registry {
	return sharedEvents.Registry{
		UserCreated: {Topic: UserTopic},
		UserUpdated: {Topic: UserTopic, CacheEntity: CacheEntity},
		UserDeleted: {Topic: UserTopic, CacheEntity: CacheEntity},
	}
}
