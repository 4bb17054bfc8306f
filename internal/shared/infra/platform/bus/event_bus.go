package bus

import "context"

// Keyer lo implementan los eventos que llevan clave de partición (el id del agregado).
type Keyer interface {
	PartitionKey() string
}

// EventBus publica eventos de integración. Topic y formato los resuelve cada adapter
// a partir del registro de eventos.
type EventBus interface {
	Publish(ctx context.Context, event interface{}) error
}

// Subscriber entrega los eventos ya serializados de un bus local.
type Subscriber interface {
	Subscribe(bufferSize int) <-chan []byte
}
