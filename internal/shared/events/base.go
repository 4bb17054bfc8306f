package events

import (
	"encoding/json"
	"sort"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Key       string          `json:"key"` // id del agregado, también clave de partición
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"` // contenido específico del evento
}

// NewIntegrationEvent serializa data dentro del sobre común.
func NewIntegrationEvent(eventType, key string, data interface{}) (IntegrationEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return IntegrationEvent{}, err
	}
	return IntegrationEvent{
		Type:      eventType,
		Key:       key,
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}, nil
}

func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}

// EventMetadata indica el topic donde se publica un evento.
// CacheEntity es el prefijo de caché que el evento invalida ("" si no invalida nada).
type EventMetadata struct {
	Topic       string
	CacheEntity string
}

// Registry asocia cada tipo de evento ("place.created") con sus metadatos.
type Registry map[string]EventMetadata

// Merge combina varios registros en uno nuevo.
func Merge(registries ...Registry) Registry {
	out := make(Registry)
	for _, r := range registries {
		for k, v := range r {
			out[k] = v
		}
	}
	return out
}

// Topics devuelve los topics distintos del registro, ordenados.
func (r Registry) Topics() []string {
	seen := make(map[string]bool)
	var topics []string
	for _, meta := range r {
		if !seen[meta.Topic] {
			seen[meta.Topic] = true
			topics = append(topics, meta.Topic)
		}
	}
	sort.Strings(topics)
	return topics
}
