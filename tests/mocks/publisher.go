package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	sharedEvents "github.com/davicafu/hexaplaces/internal/shared/events"
	sharedBus "github.com/davicafu/hexaplaces/internal/shared/infra/platform/bus"
)

// DummyPublisher guarda los eventos de integración publicados.
type DummyPublisher struct {
	Events []sharedEvents.IntegrationEvent
	mu     sync.Mutex
}

var _ sharedBus.EventBus = (*DummyPublisher)(nil)

func (p *DummyPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if evt, ok := event.(sharedEvents.IntegrationEvent); ok {
		p.Events = append(p.Events, evt)
	}
	return nil
}

// Types devuelve los tipos publicados en orden.
func (p *DummyPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}

// MockPublisher permite fijar expectativas (y errores) sobre Publish.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
