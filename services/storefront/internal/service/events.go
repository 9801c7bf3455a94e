package service

import (
	"context"

	"github.com/Skotchmaster/telco_shop/pkg/logging"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/metrics"
)

const (
	TopicConsumption = "consumption_events"
	TopicChecklist   = "checklist_events"
	TopicCart        = "cart_events"
)

// Notifier fans state changes out to Kafka. Publishing is best effort: a
// failed write is logged and counted, never returned.
type Notifier struct {
	Publisher EventPublisher
	Metrics   *metrics.Metrics
}

func (n *Notifier) publish(ctx context.Context, topic, key string, event map[string]any) {
	if n == nil || n.Publisher == nil {
		return
	}
	if err := n.Publisher.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "type", event["type"], "error", err)
		n.Metrics.EventFailure(topic)
	}
}

func (n *Notifier) ConsumptionChanged(ctx context.Context, owner string, change domain.ConsumptionChange) {
	n.publish(ctx, TopicConsumption, owner, map[string]any{
		"type":                 "consumption_changed",
		"owner":                owner,
		"consumption":          change.Consumption,
		"productSpecification": change.ProductSpecification,
	})
}

func (n *Notifier) ChecklistAction(ctx context.Context, owner string, action domain.ChecklistActionDetail) {
	event := map[string]any{
		"type":       "checklist_action",
		"owner":      owner,
		"actionType": string(action.Type),
	}
	if action.Action != "" {
		event["action"] = string(action.Action)
	} else {
		event["value"] = action.Value
	}
	n.publish(ctx, TopicChecklist, owner, event)
}

func (n *Notifier) CartEntriesUpdated(ctx context.Context, cart domain.ShoppingCart, updatedBy string) {
	n.publish(ctx, TopicCart, cart.ID, map[string]any{
		"type":       "cart_entry_updated",
		"cartID":     cart.ID,
		"baseSiteID": cart.BaseSiteID,
		"updatedBy":  updatedBy,
		"cartItem":   cart.CartItem,
	})
}
