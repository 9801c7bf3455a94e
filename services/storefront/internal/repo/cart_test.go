package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/models"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/repo"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/repo/repotest"
)

func newCartRepo(t *testing.T) *repo.GormRepo {
	return &repo.GormRepo{DB: repotest.NewDB(t)}
}

func addEntry(t *testing.T, r *repo.GormRepo, cartID string, chars ...models.EntryCharacteristic) *models.CartEntry {
	t.Helper()
	entry := &models.CartEntry{
		BaseSiteID:      "utilities",
		CartID:          cartID,
		OwnerID:         "user:1",
		ProductCode:     "green_power",
		Quantity:        1,
		Characteristics: chars,
	}
	require.NoError(t, r.AddEntry(context.Background(), entry))
	return entry
}

func TestAddEntry_NumbersPerCart(t *testing.T) {
	r := newCartRepo(t)

	first := addEntry(t, r, "c1")
	second := addEntry(t, r, "c1")
	other := addEntry(t, r, "c2")

	assert.Equal(t, 0, first.EntryNumber)
	assert.Equal(t, 1, second.EntryNumber)
	assert.Equal(t, 0, other.EntryNumber)
	assert.Equal(t, string(domain.ProcessAcquisition), first.ProcessType)

	entries, err := r.ListEntries(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].EntryNumber)
	assert.Equal(t, 1, entries[1].EntryNumber)
}

func TestApplyEntryPatch_IsAdditive(t *testing.T) {
	r := newCartRepo(t)
	ctx := context.Background()
	addEntry(t, r, "c1",
		models.EntryCharacteristic{Name: domain.CharacteristicAverageConsumption, Value: "1000"},
		models.EntryCharacteristic{Name: domain.CharacteristicMSISDN, Value: "+4917000000"},
	)

	patch := domain.CartItemPatch{
		ID: "0",
		Product: &domain.ProductPatch{Characteristic: []domain.Characteristic{
			{Name: domain.CharacteristicAverageConsumption, Value: "2500"},
			{Name: domain.CharacteristicTechnicalID, Value: "MP-1"},
		}},
	}
	entry, err := r.ApplyEntryPatch(ctx, "c1", 0, patch, "user:1")
	require.NoError(t, err)

	got := map[string]string{}
	for _, ch := range entry.Characteristics {
		got[ch.Name] = ch.Value
	}
	assert.Equal(t, map[string]string{
		domain.CharacteristicAverageConsumption: "2500",
		domain.CharacteristicMSISDN:             "+4917000000",
		domain.CharacteristicTechnicalID:        "MP-1",
	}, got)
	assert.Equal(t, "user:1", entry.UpdatedBy)
	assert.Equal(t, string(domain.ProcessAcquisition), entry.ProcessType)
}

func TestApplyEntryPatch_ServiceProviderReplacesRole(t *testing.T) {
	r := newCartRepo(t)
	ctx := context.Background()
	addEntry(t, r, "c1")

	switchTo := func(name string) *models.CartEntry {
		entry, err := r.ApplyEntryPatch(ctx, "c1", 0, domain.CartItemPatch{
			ID:                "0",
			ProcessType:       &domain.ProcessTypeRef{ID: domain.ProcessSwitchServiceProvider},
			ContractStartDate: "2026-11-01T00:00:00Z",
			Product: &domain.ProductPatch{RelatedParty: []domain.RelatedParty{
				{ID: name, Role: domain.RoleServiceProvider},
			}},
		}, "anonymous")
		require.NoError(t, err)
		return entry
	}

	switchTo("Old Power")
	entry := switchTo("New Power")

	require.Len(t, entry.RelatedParties, 1)
	assert.Equal(t, "New Power", entry.RelatedParties[0].PartyID)
	assert.Equal(t, string(domain.ProcessSwitchServiceProvider), entry.ProcessType)
	assert.Equal(t, "2026-11-01T00:00:00Z", entry.ContractStartDate)

	// acquisition without nested parties leaves them alone
	entry, err := r.ApplyEntryPatch(ctx, "c1", 0, domain.CartItemPatch{
		ID:          "0",
		ProcessType: &domain.ProcessTypeRef{ID: domain.ProcessAcquisition},
	}, "anonymous")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ProcessAcquisition), entry.ProcessType)
	assert.Len(t, entry.RelatedParties, 1)
}

func TestApplyEntryPatch_UnknownEntry(t *testing.T) {
	r := newCartRepo(t)

	_, err := r.ApplyEntryPatch(context.Background(), "missing", 0, domain.CartItemPatch{}, "x")
	require.Error(t, err)
	assert.True(t, repo.IsNotFound(err))
}

func TestRemoveEntry(t *testing.T) {
	r := newCartRepo(t)
	ctx := context.Background()
	addEntry(t, r, "c1", models.EntryCharacteristic{Name: "a", Value: "b"})

	require.NoError(t, r.RemoveEntry(ctx, "c1", 0))

	_, err := r.GetEntry(ctx, "c1", 0)
	assert.True(t, repo.IsNotFound(err))

	var count int64
	require.NoError(t, r.DB.Model(&models.EntryCharacteristic{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.True(t, repo.IsNotFound(r.RemoveEntry(ctx, "c1", 0)))
}

func TestUsageBuckets(t *testing.T) {
	r := newCartRepo(t)
	require.NoError(t, r.DB.Create(&[]models.UsageBucket{
		{SubscriptionID: "s1", ProductName: "Data", Unit: "GB", UsedValue: 3, RemainingValue: 7},
		{SubscriptionID: "s2", ProductName: "Voice", Unit: "min", UsedValue: 10},
	}).Error)

	buckets, err := r.UsageBuckets(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "Data", buckets[0].ProductName)
}
