package repo

import (
	"context"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/models"
)

func (r *GormRepo) UsageBuckets(ctx context.Context, subscriptionID string) ([]models.UsageBucket, error) {
	var buckets []models.UsageBucket
	if err := r.DB.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("id ASC").
		Find(&buckets).Error; err != nil {
		return nil, err
	}
	return buckets, nil
}
