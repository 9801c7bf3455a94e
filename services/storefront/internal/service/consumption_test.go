package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
)

func testConfig() domain.ConsumptionConfig {
	return domain.ConsumptionConfig{
		DefaultValues: []domain.ConsumptionValue{
			{ProductSpecification: "electricity", UsageUnit: "kwh", Value: "1000"},
			{ProductSpecification: "gas", UsageUnit: "cubic_meter", Value: "1200"},
		},
		Default: "1000",
		Components: []domain.ConsumptionComponent{{
			UID:                  "electricityConsumption",
			ProductSpecification: domain.Ref{ID: "electricity", Name: "Electricity"},
			UsageUnit:            domain.Ref{ID: "kwh", Name: "kWh"},
			BillingFrequency:     "year",
			SliderOptions: []domain.SliderOption{
				{UID: "high", Value: "4500"},
				{UID: "low", Value: "1500"},
				{UID: "mid", Value: "2500"},
			},
		}},
	}
}

func newConsumptionService(store OverrideStore, pub EventPublisher) *ConsumptionService {
	return &ConsumptionService{
		Store:    store,
		Config:   testConfig(),
		Notifier: &Notifier{Publisher: pub},
	}
}

func TestResolve_TableRowIsPersisted(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newConsumptionService(store, nil)

	for _, row := range testConfig().DefaultValues {
		res, err := svc.Resolve(ctx, ResolveRequest{Owner: "o", ProductSpecificationID: row.ProductSpecification, UsageUnitID: row.UsageUnit})
		require.NoError(t, err)
		assert.Equal(t, row.Value, res.Value)
		assert.Equal(t, domain.SourceTable, res.Source)
		assert.Equal(t, row.Value, store.data["o|consumption_"+row.ProductSpecification+"_"+row.UsageUnit])
	}
}

func TestResolve_GlobalDefaultIsPersisted(t *testing.T) {
	store := newMemStore()
	svc := newConsumptionService(store, nil)

	res, err := svc.Resolve(context.Background(), ResolveRequest{Owner: "o", ProductSpecificationID: "mobile", UsageUnitID: "gb"})
	require.NoError(t, err)
	assert.Equal(t, "1000", res.Value)
	assert.Equal(t, domain.SourceDefault, res.Source)
	assert.Equal(t, "1000", store.data["o|consumption_mobile_gb"])
}

func TestResolve_WritesOncePerKey(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newConsumptionService(store, nil)
	req := ResolveRequest{Owner: "o", ProductSpecificationID: "electricity", UsageUnitID: "kwh"}

	_, err := svc.Resolve(ctx, req)
	require.NoError(t, err)
	res, err := svc.Resolve(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceStored, res.Source)
	assert.Equal(t, 1, store.puts)
}

func TestResolve_StoredOverrideWins(t *testing.T) {
	store := newMemStore()
	store.data["o|consumption_electricity_kwh"] = "3300"
	svc := newConsumptionService(store, nil)

	res, err := svc.Resolve(context.Background(), ResolveRequest{Owner: "o", ProductSpecificationID: "electricity", UsageUnitID: "kwh"})
	require.NoError(t, err)
	assert.Equal(t, domain.ConsumptionResolution{Value: "3300", Source: domain.SourceStored}, res)
}

func TestResolve_QueryAndCartBypassStorage(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.data["o|consumption_electricity_kwh"] = "3300"
	svc := newConsumptionService(store, nil)
	cart := "2100"

	res, err := svc.Resolve(ctx, ResolveRequest{Owner: "o", ProductSpecificationID: "electricity", UsageUnitID: "kwh", Query: "777", CartOverride: &cart})
	require.NoError(t, err)
	assert.Equal(t, domain.ConsumptionResolution{Value: "777", Source: domain.SourceQuery}, res)

	res, err = svc.Resolve(ctx, ResolveRequest{Owner: "o", ProductSpecificationID: "gas", UsageUnitID: "cubic_meter", CartOverride: &cart})
	require.NoError(t, err)
	assert.Equal(t, domain.ConsumptionResolution{Value: "2100", Source: domain.SourceCart}, res)

	assert.Zero(t, store.puts)
	assert.Len(t, store.data, 1)
}

func TestResolve_ConfigurationMissing(t *testing.T) {
	store := newMemStore()
	svc := &ConsumptionService{Store: store}

	res, err := svc.Resolve(context.Background(), ResolveRequest{Owner: "o", ProductSpecificationID: "x", UsageUnitID: "y"})
	require.ErrorIs(t, err, ErrConfigurationMissing)
	assert.Empty(t, res.Value)
	assert.Empty(t, store.data)
}

func TestResolve_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.putErr = errBoom
	svc := newConsumptionService(store, nil)

	_, err := svc.Resolve(context.Background(), ResolveRequest{Owner: "o", ProductSpecificationID: "gas", UsageUnitID: "cubic_meter"})
	require.ErrorIs(t, err, errBoom)
}

func TestSaveOverride_RejectsInvalid(t *testing.T) {
	for _, candidate := range []string{"0", "abc", "", "-5", "12.5", "00"} {
		t.Run(candidate, func(t *testing.T) {
			store := newMemStore()
			store.data["o|consumption_electricity_kwh"] = "1000"
			pub := &recordingPublisher{}
			svc := newConsumptionService(store, pub)

			_, err := svc.SaveOverride(context.Background(), "o", "electricity", "kwh", candidate)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, map[string]string{"o|consumption_electricity_kwh": "1000"}, store.data)
			assert.Empty(t, pub.events)
		})
	}
}

func TestSaveOverride_WritesAndNotifies(t *testing.T) {
	store := newMemStore()
	pub := &recordingPublisher{}
	svc := newConsumptionService(store, pub)

	change, err := svc.SaveOverride(context.Background(), "client:abc", "electricity", "kwh", " 2500 ")
	require.NoError(t, err)
	assert.Equal(t, domain.ConsumptionChange{Consumption: "2500", ProductSpecification: "electricity"}, change)
	assert.Equal(t, "2500", store.data["client:abc|consumption_electricity_kwh"])

	require.Equal(t, []string{TopicConsumption, TopicChecklist}, pub.topics())
	assert.Equal(t, "consumption_changed", pub.events[0].Event["type"])
	assert.Equal(t, "client:abc", pub.events[0].Key)
	assert.Equal(t, string(domain.ChecklistEstimatedConsumption), pub.events[1].Event["actionType"])
	assert.Equal(t, "2500", pub.events[1].Event["value"])
}

func TestSaveOverride_PublishFailureDoesNotFail(t *testing.T) {
	store := newMemStore()
	svc := newConsumptionService(store, &recordingPublisher{err: errors.New("broker down")})

	_, err := svc.SaveOverride(context.Background(), "o", "gas", "cubic_meter", "900")
	require.NoError(t, err)
	assert.Equal(t, "900", store.data["o|consumption_gas_cubic_meter"])
}

func TestComponents(t *testing.T) {
	svc := newConsumptionService(newMemStore(), nil)

	views, err := svc.Components(context.Background(), "o", "")
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, "1000", v.Value)
	assert.Equal(t, "1000 kWh/year", v.Display)
	require.Len(t, v.SliderOptions, 3)
	assert.Equal(t, []string{"1500", "2500", "4500"}, []string{v.SliderOptions[0].Value, v.SliderOptions[1].Value, v.SliderOptions[2].Value})
	assert.Equal(t, "1500 kWh/year", v.SliderOptions[0].Display)

	views, err = svc.Components(context.Background(), "o", "4200")
	require.NoError(t, err)
	assert.Equal(t, "4200 kWh/year", views[0].Display)
}

func TestSortedSliderOptions_NonNumericLast(t *testing.T) {
	in := []domain.SliderOption{{UID: "x", Value: "lots"}, {UID: "b", Value: "20"}, {UID: "a", Value: "3"}}
	out := SortedSliderOptions(in)

	assert.Equal(t, []string{"a", "b", "x"}, []string{out[0].UID, out[1].UID, out[2].UID})
	assert.Equal(t, "x", in[0].UID, "input is not reordered")
}

func TestUsageUnitAndBillingFrequency(t *testing.T) {
	svc := newConsumptionService(newMemStore(), nil)

	assert.Equal(t, "kWh/year", svc.UsageUnitAndBillingFrequency("electricity"))
	assert.Empty(t, svc.UsageUnitAndBillingFrequency("mobile"))
}
