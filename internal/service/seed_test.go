package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_FillsEmptyCatalogOnce(t *testing.T) {
	ctx := context.Background()
	svc, store, _, _ := setupPS(t)

	created, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SampleProducts()), created)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, n)

	created, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)

	n, _ = store.Count(ctx)
	assert.Equal(t, len(SampleProducts()), n)
}

func TestSeed_SkipsNonEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	svc, store, _, _ := setupPS(t)

	_, err := svc.CreateProduct(ctx, validInput("Existing", 1))
	require.NoError(t, err)

	created, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)

	n, _ := store.Count(ctx)
	assert.Equal(t, 1, n)
}

func TestSeed_DashboardShowsLowStockSamples(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := setupPS(t)

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)

	slugs := []string{}
	for _, p := range stats.LowStockItems {
		slugs = append(slugs, p.Slug)
	}
	assert.ElementsMatch(t, []string{"running-shoes", "plant-based-protein-powder"}, slugs)
	assert.Len(t, stats.RecentlyUpdated, RecentLimit)
}
