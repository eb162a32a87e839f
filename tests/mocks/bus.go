package mocks

import (
	"context"
	"sync"

	membershipDomain "github.com/annaclara1997/event-buddy-project/internal/membership/domain"
	sharedBus "github.com/annaclara1997/event-buddy-project/internal/shared/infra/platform/bus"
)

// DummyPublisher acumula os eventos publicados.
type DummyPublisher struct {
	mu        sync.Mutex
	Published []interface{}
}

var _ sharedBus.EventBus = (*DummyPublisher)(nil)

func (p *DummyPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = append(p.Published, event)
	return nil
}

func (p *DummyPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Published)
}

// DummyAuditor acumula os registos de toggle.
type DummyAuditor struct {
	mu      sync.Mutex
	Records []membershipDomain.ToggleRecord
}

var _ membershipDomain.ToggleAuditor = (*DummyAuditor)(nil)

func (a *DummyAuditor) RecordToggle(ctx context.Context, rec membershipDomain.ToggleRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Records = append(a.Records, rec)
	return nil
}

func (a *DummyAuditor) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Records)
}
