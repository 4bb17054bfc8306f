package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/davicafu/hexaplaces/internal/shared/infra/platform/bus"
)

// InMemoryEventBus reparte los eventos (serializados a JSON) entre sus suscriptores.
// Sustituye a Kafka cuando USE_KAFKA=false.
type InMemoryEventBus struct {
	subscribers []chan []byte
	mu          sync.RWMutex
}

var (
	_ sharedBus.EventBus   = (*InMemoryEventBus)(nil)
	_ sharedBus.Subscriber = (*InMemoryEventBus)(nil)
)

func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{}
}

// Publish no bloquea: si el buffer de un suscriptor está lleno, ese suscriptor pierde el evento.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subscribers {
		select {
		case sub <- payload:
		default:
		}
	}
	return nil
}

func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan []byte, bufferSize)
	b.subscribers = append(b.subscribers, sub)
	return sub
}
