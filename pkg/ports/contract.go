package ports

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/aretw0/crema/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTranslation() *domain.Translation {
	return &domain.Translation{
		Profile: &domain.TargetProfile{
			Label:       "Contract",
			Type:        domain.ProfileTypePro,
			Temperature: 93,
			Phases: []domain.Phase{{
				Name:        "Fill",
				Phase:       domain.PhasePreinfusion,
				Valve:       domain.DefaultValve,
				Duration:    10,
				Temperature: 93,
				Transition:  domain.Transition{Type: domain.TransitionLinear, Duration: 10},
				Pump:        domain.Pump{Target: domain.PumpPressure, Pressure: 3, Flow: 10},
				Targets:     []domain.Target{{Type: domain.TargetTime, Operator: domain.OpGTE, Value: 10}},
			}},
		},
		Warnings: []string{"[Unsupported] power exit trigger is not supported by Gaggimate machines. This trigger will be ignored."},
	}
}

// RunResultCacheContract runs a suite of tests to verify that a ResultCache
// implementation adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	key := CacheKey(domain.ModeSmart, 15, []byte("contract-"+time.Now().Format("20060102150405.000")))

	t.Run("Put and Get", func(t *testing.T) {
		want := sampleTranslation()
		require.NoError(t, cache.Put(ctx, key, want), "Put should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, want, got)
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, sampleTranslation()))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		got.Profile.Label = "mutated"

		again, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "Contract", again.Profile.Label)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, sampleTranslation()))
		require.NoError(t, cache.Delete(ctx, key), "Delete should not return error")

		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")
		assert.NoError(t, cache.Delete(ctx, key), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		k1, k2 := key+"-1", key+"-2"
		require.NoError(t, cache.Put(ctx, k1, sampleTranslation()))
		require.NoError(t, cache.Put(ctx, k2, sampleTranslation()))
		defer func() {
			_ = cache.Delete(ctx, k1)
			_ = cache.Delete(ctx, k2)
		}()

		keys, err := cache.List(ctx)
		require.NoError(t, err)
		sort.Strings(keys)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
