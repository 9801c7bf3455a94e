package repo_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/repo"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/repo/repotest"
)

type overrideStore interface {
	GetOverride(ctx context.Context, owner, key string) (string, bool, error)
	PutOverride(ctx context.Context, owner, key, value string) error
}

func stores(t *testing.T) map[string]overrideStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]overrideStore{
		"gorm":  &repo.GormRepo{DB: repotest.NewDB(t)},
		"redis": repo.NewRedisOverrideStore(client),
	}
}

func TestOverrideStores(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := store.GetOverride(ctx, "client:a", "consumption_electricity_kwh")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, store.PutOverride(ctx, "client:a", "consumption_electricity_kwh", "1500"))
			v, ok, err := store.GetOverride(ctx, "client:a", "consumption_electricity_kwh")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "1500", v)

			require.NoError(t, store.PutOverride(ctx, "client:a", "consumption_electricity_kwh", "2500"))
			v, _, err = store.GetOverride(ctx, "client:a", "consumption_electricity_kwh")
			require.NoError(t, err)
			require.Equal(t, "2500", v)

			_, ok, err = store.GetOverride(ctx, "client:b", "consumption_electricity_kwh")
			require.NoError(t, err)
			require.False(t, ok, "overrides are scoped to their owner")
		})
	}
}

func TestRedisOverrideStore_HashLayout(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := repo.NewRedisOverrideStore(client)
	require.NoError(t, store.PutOverride(context.Background(), "user:42", "consumption_gas_cubic_meter", "1200"))

	require.Equal(t, "1200", mr.HGet("consumption_overrides:user:42", "consumption_gas_cubic_meter"))
}
