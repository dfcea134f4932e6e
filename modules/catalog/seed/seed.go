// Package seed provides the static product list the storefront falls back
// to when the catalog cannot be fetched.
package seed

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/0wem/weblarek/modules/shared/types"
)

//go:embed products.yaml
var productsYAML []byte

var ErrInvalidSeed = errors.New("invalid seed catalog")

type seedProduct struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Image       string         `yaml:"image"`
	Category    types.Category `yaml:"category"`
	Price       *int64         `yaml:"price"`
}

// Products decodes the embedded catalog. Each call returns a fresh slice.
func Products() ([]types.Product, error) {
	return Parse(productsYAML)
}

// Parse decodes a YAML product list. Ids must be present and unique.
func Parse(data []byte) ([]types.Product, error) {
	var raw []seedProduct
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}

	seen := make(map[string]bool, len(raw))
	products := make([]types.Product, 0, len(raw))
	for i, p := range raw {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: product %d has no id", ErrInvalidSeed, i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidSeed, p.ID)
		}
		seen[p.ID] = true

		price := types.Priceless
		if p.Price != nil {
			price = types.PriceFromInt(*p.Price)
		}
		products = append(products, types.Product{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Image:       p.Image,
			Category:    p.Category,
			Price:       price,
		})
	}
	return products, nil
}

// MustProducts panics if the embedded catalog is malformed.
func MustProducts() []types.Product {
	products, err := Products()
	if err != nil {
		panic(err)
	}
	return products
}
