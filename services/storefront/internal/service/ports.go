package service

import (
	"context"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
)

// OverrideStore persists consumption overrides per owner.
type OverrideStore interface {
	GetOverride(ctx context.Context, owner, key string) (string, bool, error)
	PutOverride(ctx context.Context, owner, key, value string) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type PremiseValidator interface {
	ValidatePremise(ctx context.Context, premise domain.PremiseDetail) (*domain.TechnicalResources, error)
}

type Translator interface {
	Translate(key string, params map[string]string) string
}

// MessageSink collects user-visible messages raised while serving a request.
type MessageSink interface {
	Add(msg domain.Message)
}

type Messages []domain.Message

func (m *Messages) Add(msg domain.Message) {
	*m = append(*m, msg)
}
