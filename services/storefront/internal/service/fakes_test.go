package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
)

type memStore struct {
	data   map[string]string
	putErr error
	puts   int
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) GetOverride(_ context.Context, owner, key string) (string, bool, error) {
	v, ok := m.data[owner+"|"+key]
	return v, ok, nil
}

func (m *memStore) PutOverride(_ context.Context, owner, key, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[owner+"|"+key] = value
	return nil
}

type published struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{Topic: topic, Key: key, Event: event.(map[string]any)})
	return nil
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Topic)
	}
	return out
}

type fakeValidator struct {
	resources *domain.TechnicalResources
	err       error
	calls     int
}

func (f *fakeValidator) ValidatePremise(context.Context, domain.PremiseDetail) (*domain.TechnicalResources, error) {
	f.calls++
	return f.resources, f.err
}

type fakeTranslator struct{}

func (fakeTranslator) Translate(key string, _ map[string]string) string {
	return "t:" + key
}

var errBoom = errors.New("boom")
