package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/i18n"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/models"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/repo"
)

type UsageService struct {
	Repo       *repo.GormRepo
	Translator Translator
}

func (s *UsageService) Report(ctx context.Context, subscriptionID string) (domain.UsageReport, error) {
	buckets, err := s.Repo.UsageBuckets(ctx, subscriptionID)
	if err != nil {
		return domain.UsageReport{}, err
	}
	if len(buckets) == 0 {
		return domain.UsageReport{}, fmt.Errorf("subscription %s: %w", subscriptionID, ErrNotFound)
	}

	report := domain.UsageReport{SubscriptionID: subscriptionID}
	for _, b := range buckets {
		report.Buckets = append(report.Buckets, UsageView(b, s.Translator))
	}
	return report, nil
}

// UsageView shapes one bucket for the usage chart. A negative remainder
// means the allowance was exceeded; the chart then shows it as empty and,
// with a translator, the view carries the over-usage message.
func UsageView(b models.UsageBucket, t Translator) domain.UsageBucketView {
	remaining := b.RemainingValue
	over := remaining < 0
	if over {
		remaining = 0
	}
	view := domain.UsageBucketView{
		ProductName: b.ProductName,
		Unit:        b.Unit,
		Used:        b.UsedValue,
		Remaining:   remaining,
		OverUsage:   over,
		ChartData:   [2]float64{b.UsedValue, remaining},
	}
	if over && t != nil {
		view.Message = t.Translate(i18n.UsageOverUsage, map[string]string{
			"value": strconv.FormatFloat(-b.RemainingValue, 'f', -1, 64),
			"unit":  b.Unit,
		})
	}
	return view
}
