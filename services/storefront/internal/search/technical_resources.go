package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
)

// TechnicalResourceIndex looks premises up in the meter point index kept by
// the network operator feed.
type TechnicalResourceIndex struct {
	ES      *elasticsearch.Client
	Index   string
	Timeout time.Duration
}

type technicalResourceDoc struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	PostalCode     string `json:"postalCode"`
	City           string `json:"city"`
	StreetName     string `json:"streetName"`
	BuildingNumber string `json:"buildingNumber"`
}

func buildQuery(premise domain.PremiseDetail) map[string]any {
	filters := []any{
		map[string]any{"term": map[string]any{"id": premise.TechnicalDetails.ID}},
	}
	if t := strings.TrimSpace(premise.TechnicalDetails.Type); t != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"type": t}})
	}
	if a := premise.InstallationAddress; a != nil {
		if a.PostalCode != "" {
			filters = append(filters, map[string]any{"term": map[string]any{"postalCode": a.PostalCode}})
		}
		if a.City != "" {
			filters = append(filters, map[string]any{"match": map[string]any{"city": a.City}})
		}
	}
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{"filter": filters},
		},
		"size": 10,
	}
}

// ValidatePremise returns the technical resources matching the premise. An
// empty result is not an error.
func (x *TechnicalResourceIndex) ValidatePremise(ctx context.Context, premise domain.PremiseDetail) (*domain.TechnicalResources, error) {
	if x.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.Timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(premise)); err != nil {
		return nil, fmt.Errorf("encode premise query: %w", err)
	}

	res, err := x.ES.Search(
		x.ES.Search.WithContext(ctx),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("premise search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("premise search: %s: %s", res.Status(), body)
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source technicalResourceDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode premise search: %w", err)
	}

	out := &domain.TechnicalResources{TechnicalResources: make([]domain.TechnicalResource, 0, len(r.Hits.Hits))}
	for _, hit := range r.Hits.Hits {
		out.TechnicalResources = append(out.TechnicalResources, domain.TechnicalResource{ID: hit.Source.ID, Type: hit.Source.Type})
	}
	return out, nil
}
