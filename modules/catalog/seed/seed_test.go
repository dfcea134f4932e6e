package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0wem/weblarek/modules/catalog/seed"
)

func TestProducts_EmbeddedCatalogIsUsable(t *testing.T) {
	products, err := seed.Products()
	require.NoError(t, err)
	require.NotEmpty(t, products)

	forSale := 0
	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.True(t, p.Category.IsKnown(), "unknown category %q", p.Category)
		if p.ForSale() {
			forSale++
		}
	}
	assert.Positive(t, forSale)
}

func TestParse_NullPriceIsPriceless(t *testing.T) {
	products, err := seed.Parse([]byte(`
- id: a
  title: A
  price: null
- id: b
  title: B
  price: 0
`))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.True(t, products[0].Price.IsPriceless())
	assert.False(t, products[1].Price.IsPriceless())
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	_, err := seed.Parse([]byte(`
- id: a
- id: a
`))
	assert.ErrorIs(t, err, seed.ErrInvalidSeed)
}

func TestParse_RejectsMissingID(t *testing.T) {
	_, err := seed.Parse([]byte(`- title: nameless`))
	assert.ErrorIs(t, err, seed.ErrInvalidSeed)
}
