package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/example/freshmarket/internal/models"
)

//go:embed catalog.json
var catalogJSON []byte

var loadCatalog = sync.OnceValues(func() ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal(catalogJSON, &products); err != nil {
		return nil, err
	}
	return products, nil
})

// DefaultCatalog returns a fresh copy of the built-in product catalog.
func DefaultCatalog() []models.Product {
	products, err := loadCatalog()
	if err != nil {
		panic(fmt.Sprintf("seed: embedded catalog is invalid: %v", err))
	}
	return slices.Clone(products)
}

// CatalogProduct looks up a default catalog entry by id.
func CatalogProduct(id string) (models.Product, bool) {
	for _, p := range DefaultCatalog() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
