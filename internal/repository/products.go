package repository

import (
	"context"
	"fmt"

	"github.com/example/freshmarket/internal/latency"
	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/seed"
	"github.com/example/freshmarket/internal/storage"
)

// ProductRepository manages the catalog.
type ProductRepository struct {
	*base
}

func (r *ProductRepository) load(ctx context.Context, def []models.Product) []models.Product {
	return storage.Read(ctx, r.store, storage.KeyProducts, def)
}

func (r *ProductRepository) save(ctx context.Context, products []models.Product) error {
	if err := storage.Write(ctx, r.store, storage.KeyProducts, products); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}

// GetAll returns the catalog, or the default catalog when none is stored.
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, err := r.begin(ctx, latency.OpProductsList)
	if err != nil {
		return nil, err
	}
	return r.load(ctx, seed.DefaultCatalog()), nil
}

// ByCategory returns the catalog entries in category, in catalog order.
func (r *ProductRepository) ByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Get returns a single product.
func (r *ProductRepository) Get(ctx context.Context, id string) (models.Product, error) {
	ctx, err := r.begin(ctx, latency.OpProductGet)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range r.load(ctx, seed.DefaultCatalog()) {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

// Create stores product under a freshly assigned id and returns it.
func (r *ProductRepository) Create(ctx context.Context, caller Caller, product models.Product) (models.Product, error) {
	if !caller.canManageCatalog() {
		return models.Product{}, ErrForbidden
	}
	ctx, unlock, err := r.beginWrite(ctx, latency.OpProductCreate)
	if err != nil {
		return models.Product{}, err
	}
	defer unlock()

	product.ID = r.newID()
	products := append(r.load(ctx, []models.Product{}), product)
	if err := r.save(ctx, products); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update replaces the product with the same id wholesale.
func (r *ProductRepository) Update(ctx context.Context, caller Caller, product models.Product) (models.Product, error) {
	if !caller.canManageCatalog() {
		return models.Product{}, ErrForbidden
	}
	ctx, unlock, err := r.beginWrite(ctx, latency.OpProductUpdate)
	if err != nil {
		return models.Product{}, err
	}
	defer unlock()

	products := r.load(ctx, []models.Product{})
	index := -1
	for i, p := range products {
		if p.ID == product.ID {
			index = i
			break
		}
	}
	if index == -1 {
		return models.Product{}, ErrNotFound
	}

	products[index] = product
	if err := r.save(ctx, products); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Delete removes the product with id if present.
func (r *ProductRepository) Delete(ctx context.Context, caller Caller, id string) error {
	if !caller.canManageCatalog() {
		return ErrForbidden
	}
	ctx, unlock, err := r.beginWrite(ctx, latency.OpProductDelete)
	if err != nil {
		return err
	}
	defer unlock()

	products := r.load(ctx, []models.Product{})
	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return r.save(ctx, kept)
}
