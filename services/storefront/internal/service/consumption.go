package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/Skotchmaster/telco_shop/pkg/logging"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/metrics"
)

type ConsumptionService struct {
	Store    OverrideStore
	Config   domain.ConsumptionConfig
	Notifier *Notifier
	Metrics  *metrics.Metrics
}

type ResolveRequest struct {
	Owner                  string
	ProductSpecificationID string
	UsageUnitID            string
	// Query is the consumption route parameter, used verbatim when set.
	Query string
	// CartOverride is non-nil while a cart entry is being edited.
	CartOverride *string
}

// Resolve returns the usage estimate for a product specification and usage
// unit. Values taken from the default table or the global default are
// written to the store so later reads find them there.
func (s *ConsumptionService) Resolve(ctx context.Context, req ResolveRequest) (domain.ConsumptionResolution, error) {
	res, err := s.resolve(ctx, req)
	if err == nil {
		s.Metrics.Resolution(string(res.Source))
	}
	return res, err
}

func (s *ConsumptionService) resolve(ctx context.Context, req ResolveRequest) (domain.ConsumptionResolution, error) {
	if req.Query != "" {
		return domain.ConsumptionResolution{Value: req.Query, Source: domain.SourceQuery}, nil
	}
	if req.CartOverride != nil {
		return domain.ConsumptionResolution{Value: *req.CartOverride, Source: domain.SourceCart}, nil
	}

	key := domain.NewConsumptionKey(req.ProductSpecificationID, req.UsageUnitID).String()
	stored, ok, err := s.Store.GetOverride(ctx, req.Owner, key)
	if err != nil {
		return domain.ConsumptionResolution{}, fmt.Errorf("read override %s: %w", key, err)
	}
	if ok {
		return domain.ConsumptionResolution{Value: stored, Source: domain.SourceStored}, nil
	}

	res := domain.ConsumptionResolution{Source: domain.SourceNone}
	if row, found := s.Config.DefaultFor(req.ProductSpecificationID, req.UsageUnitID); found {
		res = domain.ConsumptionResolution{Value: row.Value, Source: domain.SourceTable}
	} else if s.Config.Default != "" {
		res = domain.ConsumptionResolution{Value: s.Config.Default, Source: domain.SourceDefault}
	} else {
		return res, fmt.Errorf("no default for %s: %w", key, ErrConfigurationMissing)
	}

	if err := s.Store.PutOverride(ctx, req.Owner, key, res.Value); err != nil {
		return domain.ConsumptionResolution{}, fmt.Errorf("persist default %s: %w", key, err)
	}
	return res, nil
}

// ParseConsumption accepts a positive base-10 integer, ignoring surrounding
// whitespace, and returns it in canonical form.
func ParseConsumption(candidate string) (string, error) {
	value, ok := domain.CanonicalConsumption(candidate)
	if !ok {
		return "", fmt.Errorf("consumption %q must be a positive integer: %w", candidate, ErrValidation)
	}
	return value, nil
}

// SaveOverride validates and stores a user-entered estimate, then tells
// observers about it. Rejected values leave the store untouched.
func (s *ConsumptionService) SaveOverride(ctx context.Context, owner, productSpecificationID, usageUnitID, candidate string) (domain.ConsumptionChange, error) {
	value, err := ParseConsumption(candidate)
	if err != nil {
		s.Metrics.OverrideSave(metrics.OutcomeRejected)
		return domain.ConsumptionChange{}, err
	}

	key := domain.NewConsumptionKey(productSpecificationID, usageUnitID).String()
	if err := s.Store.PutOverride(ctx, owner, key, value); err != nil {
		s.Metrics.OverrideSave(metrics.OutcomeError)
		return domain.ConsumptionChange{}, fmt.Errorf("save override %s: %w", key, err)
	}
	s.Metrics.OverrideSave(metrics.OutcomeOK)

	change := domain.ConsumptionChange{Consumption: value, ProductSpecification: productSpecificationID}
	s.Notifier.ConsumptionChanged(ctx, owner, change)
	s.Notifier.ChecklistAction(ctx, owner, domain.ChecklistActionDetail{
		Type:  domain.ChecklistEstimatedConsumption,
		Value: value,
	})
	return change, nil
}

type ComponentView struct {
	UID                  string                   `json:"uid"`
	ProductSpecification domain.Ref               `json:"productSpecification"`
	UsageUnit            domain.Ref               `json:"usageUnit"`
	BillingFrequency     string                   `json:"billingFrequency"`
	Value                string                   `json:"value"`
	Source               domain.ConsumptionSource `json:"source"`
	Display              string                   `json:"display"`
	SliderOptions        []SliderOptionView       `json:"sliderOptions"`
}

type SliderOptionView struct {
	domain.SliderOption
	Display string `json:"display"`
}

// Components lists the search-by-consumption widgets with their current
// values. A component without any configured default shows an empty value.
func (s *ConsumptionService) Components(ctx context.Context, owner, query string) ([]ComponentView, error) {
	l := logging.FromContext(ctx)
	views := make([]ComponentView, 0, len(s.Config.Components))
	for _, c := range s.Config.Components {
		res, err := s.Resolve(ctx, ResolveRequest{
			Owner:                  owner,
			ProductSpecificationID: c.ProductSpecification.ID,
			UsageUnitID:            c.UsageUnit.ID,
			Query:                  query,
		})
		if err != nil && !errors.Is(err, ErrConfigurationMissing) {
			return nil, err
		}
		if err != nil {
			l.Warn("consumption_configuration_missing", "component", c.UID, "error", err)
		}

		view := ComponentView{
			UID:                  c.UID,
			ProductSpecification: c.ProductSpecification,
			UsageUnit:            c.UsageUnit,
			BillingFrequency:     c.BillingFrequency,
			Value:                res.Value,
			Source:               res.Source,
		}
		if res.Value != "" {
			view.Display = FormatConsumption(res.Value, c)
		}
		for _, opt := range SortedSliderOptions(c.SliderOptions) {
			view.SliderOptions = append(view.SliderOptions, SliderOptionView{
				SliderOption: opt,
				Display:      FormatConsumption(opt.Value, c),
			})
		}
		views = append(views, view)
	}
	return views, nil
}

// FormatConsumption renders a value the way product lists show it, for
// example "1000 kWh/year".
func FormatConsumption(value string, c domain.ConsumptionComponent) string {
	return value + " " + c.UsageUnit.Name + "/" + c.BillingFrequency
}

// SortedSliderOptions orders options by numeric value. Options whose value
// is not a number keep their relative order at the end.
func SortedSliderOptions(options []domain.SliderOption) []domain.SliderOption {
	out := append([]domain.SliderOption(nil), options...)
	sort.SliceStable(out, func(i, j int) bool {
		a, aErr := strconv.ParseFloat(out[i].Value, 64)
		b, bErr := strconv.ParseFloat(out[j].Value, 64)
		switch {
		case aErr != nil:
			return false
		case bErr != nil:
			return true
		default:
			return a < b
		}
	})
	return out
}

// UsageUnitAndBillingFrequency returns "unit/frequency" for the first
// component configured for the product specification, or "".
func (s *ConsumptionService) UsageUnitAndBillingFrequency(productSpecificationID string) string {
	for _, c := range s.Config.Components {
		if c.ProductSpecification.ID == productSpecificationID {
			return c.UsageUnit.Name + "/" + c.BillingFrequency
		}
	}
	return ""
}
