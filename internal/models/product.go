package models

import (
	"errors"
	"strings"
)

// Category is the closed set of catalog sections.
type Category string

const (
	CategoryProduce   Category = "Produce"
	CategoryDairy     Category = "Dairy & Eggs"
	CategoryBakery    Category = "Bakery"
	CategoryMeat      Category = "Meat & Seafood"
	CategoryPantry    Category = "Pantry"
	CategoryBeverages Category = "Beverages"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryProduce,
		CategoryDairy,
		CategoryBakery,
		CategoryMeat,
		CategoryPantry,
		CategoryBeverages,
	}
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry. Image is either a URL or an inline data URI.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Unit        string   `json:"unit"`
	Rating      float64  `json:"rating"`
}

// Validate checks the product against the catalog invariants.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.Price < 0 {
		return errors.New("price must not be negative")
	}
	if !p.Category.Valid() {
		return errors.New("unknown category")
	}
	return nil
}
