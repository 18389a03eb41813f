package seed

import "github.com/example/freshmarket/internal/models"

// Field names a product attribute a Patch can re-sync.
type Field string

const (
	FieldName        Field = "name"
	FieldPrice       Field = "price"
	FieldCategory    Field = "category"
	FieldImage       Field = "image"
	FieldDescription Field = "description"
	FieldUnit        Field = "unit"
	FieldRating      Field = "rating"
)

// Patch copies one field of a stored product from the default catalog. It
// lets already-seeded stores pick up catalog fixes without a reset.
type Patch struct {
	ProductID string
	Field     Field
}

// CatalogPatches are applied on every start to non-empty catalogs.
var CatalogPatches = []Patch{
	{ProductID: "519", Field: FieldImage},
	{ProductID: "102", Field: FieldImage},
}

// apply updates current from def and reports whether anything changed.
func (p Patch) apply(current *models.Product, def models.Product) bool {
	switch p.Field {
	case FieldName:
		return syncField(&current.Name, def.Name)
	case FieldPrice:
		return syncField(&current.Price, def.Price)
	case FieldCategory:
		return syncField(&current.Category, def.Category)
	case FieldImage:
		return syncField(&current.Image, def.Image)
	case FieldDescription:
		return syncField(&current.Description, def.Description)
	case FieldUnit:
		return syncField(&current.Unit, def.Unit)
	case FieldRating:
		return syncField(&current.Rating, def.Rating)
	}
	return false
}

func syncField[T comparable](dst *T, want T) bool {
	if *dst == want {
		return false
	}
	*dst = want
	return true
}

// applyPatches runs patches over products in place and returns the ids of
// products that changed.
func applyPatches(products []models.Product, patches []Patch) []string {
	var changed []string
	for _, patch := range patches {
		def, ok := CatalogProduct(patch.ProductID)
		if !ok {
			continue
		}
		for i := range products {
			if products[i].ID != patch.ProductID {
				continue
			}
			if patch.apply(&products[i], def) {
				changed = append(changed, patch.ProductID)
			}
		}
	}
	return changed
}
