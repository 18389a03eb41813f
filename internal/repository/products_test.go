package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/seed"
	"github.com/example/freshmarket/internal/storage"
)

func TestProductsGetAllDefaultsToCatalog(t *testing.T) {
	ctx := context.Background()
	repos := New(Options{Store: storage.NewMemoryStore()})

	products, err := repos.Products.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultCatalog(), products)
}

func TestProductCreateUpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	before, err := f.repos.Products.GetAll(ctx)
	require.NoError(t, err)

	x := models.Product{
		ID:          "ignored",
		Name:        "Saffron (Kesar)",
		Price:       550,
		Category:    models.CategoryPantry,
		Image:       "data:image/png;base64,iVBORw0KGgo=",
		Description: "Pampore saffron.",
		Unit:        "1g",
		Rating:      5,
	}

	created, err := f.repos.Products.Create(ctx, admin, x)
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", created.ID)

	updated, err := f.repos.Products.Update(ctx, subAdmin, created)
	require.NoError(t, err)

	want := x
	want.ID = created.ID
	assert.Equal(t, want, updated)

	all, err := f.repos.Products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(before)+1)

	count := 0
	for _, p := range all {
		if p.ID == created.ID {
			count++
			assert.Equal(t, want, p)
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, created.ID, all[len(all)-1].ID, "new products are appended")
}

func TestProductUpdateMissing(t *testing.T) {
	f := newFixture(t)
	_, err := f.repos.Products.Update(context.Background(), admin, models.Product{ID: "nope", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductWritesRequireStaff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, alice := f.signup(t, "Alice", "alice@x.com", "pw1")

	_, err := f.repos.Products.Create(ctx, alice, models.Product{Name: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.repos.Products.Update(ctx, Anonymous, models.Product{ID: "101"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, f.repos.Products.Delete(ctx, alice, "101"), ErrForbidden)
}

func TestProductDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.repos.Products.Delete(ctx, admin, "101"))
	require.NoError(t, f.repos.Products.Delete(ctx, admin, "101"))

	_, err := f.repos.Products.Get(ctx, "101")
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := f.repos.Products.Get(ctx, "102")
	require.NoError(t, err)
	assert.Equal(t, "102", p.ID)
}

func TestProductsByCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	total := 0
	for _, c := range models.Categories() {
		products, err := f.repos.Products.ByCategory(ctx, c)
		require.NoError(t, err)
		assert.NotEmpty(t, products, c)
		for _, p := range products {
			assert.Equal(t, c, p.Category)
		}
		total += len(products)
	}
	assert.Len(t, seed.DefaultCatalog(), total)
}
