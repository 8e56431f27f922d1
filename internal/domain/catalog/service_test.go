package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote/memory"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

func seedCatalog(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	put := func(coll, id string, p Product) {
		require.NoError(t, store.Put(coll, id, p))
	}
	put("mobileData", "1", Product{Company: "Samsung", Model: "Galaxy S24", Price: 74999, Product: "mobile", Description: "AMOLED display"})
	put("mobileData", "2", Product{Company: "Apple", Model: "iPhone 15", Price: 79900, Product: "mobile"})
	put("tvData", "1", Product{Brand: "Samsung", Model: "Crystal 4K", Price: 32990, Product: "tv"})
	put("watchData", "1", Product{Company: "Titan", Model: "Edge", Price: 9995, Product: "watch", Description: "slim samsung-free steel"})
	return store
}

func newTestService(store *memory.Store) *Service {
	logger, _ := test.NewNullLogger()
	return NewService(store, nil, logger)
}

func TestProductKeyFallsBackToBrand(t *testing.T) {
	assert.Equal(t, ProductKey{Company: "LG", Model: "X"}, Product{Brand: "LG", Model: "X"}.Key())
	assert.Equal(t, ProductKey{Company: "Sony", Model: "X"}, Product{Company: "Sony", Brand: "LG", Model: "X"}.Key())
}

func TestListCategory(t *testing.T) {
	svc := newTestService(seedCatalog(t))

	products, err := svc.ListCategory(context.Background(), "mobiles")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Galaxy S24", products[0].Model)
	assert.Equal(t, "1", products[0].ID)

	_, err = svc.ListCategory(context.Background(), "cars")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProductLookup(t *testing.T) {
	svc := newTestService(seedCatalog(t))

	p, err := svc.Product(context.Background(), "mobiles", "2")
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15", p.Model)
	assert.Equal(t, "2", p.ID)

	_, err = svc.Product(context.Background(), "mobiles", "9")
	assert.ErrorIs(t, err, apperr.ErrTransport)

	_, err = svc.Product(context.Background(), "cars", "1")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestFeaturedSkipsEmptyCategories(t *testing.T) {
	svc := newTestService(seedCatalog(t))

	featured, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 3)
	assert.Equal(t, "mobiles", featured[0].Category.Slug)
	assert.Equal(t, "Galaxy S24", featured[0].Product.Model)
	assert.Equal(t, "tvs", featured[1].Category.Slug)
	assert.Equal(t, "watches", featured[2].Category.Slug)
}

func TestSearch(t *testing.T) {
	svc := newTestService(seedCatalog(t))
	ctx := context.Background()

	results, err := svc.Search(ctx, "  SAMSUNG ", "")
	require.NoError(t, err)
	var models []string
	for _, p := range results {
		models = append(models, p.Model)
	}
	assert.Equal(t, []string{"Galaxy S24", "Crystal 4K", "Edge"}, models)

	results, err = svc.Search(ctx, "samsung", "TV")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Crystal 4K", results[0].Model)

	results, err = svc.Search(ctx, "   ", "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchFailsWhenAnyCategoryFails(t *testing.T) {
	store := seedCatalog(t)
	store.Fail = func(c memory.Call) error {
		if c.Collection == "tvData" {
			return errors.New("timeout")
		}
		return nil
	}

	_, err := newTestService(store).Search(context.Background(), "samsung", "")
	assert.ErrorIs(t, err, apperr.ErrTransport)
}

func TestCategoriesWithCollections(t *testing.T) {
	categories := CategoriesWithCollections(map[string]string{"tvs": "televisions", "cars": "carData"})
	require.Len(t, categories, 6)
	assert.Equal(t, "televisions", categories[4].Collection)
	assert.Equal(t, "mobileData", categories[0].Collection)
}
