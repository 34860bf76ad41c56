package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Organic Red Apples":    "organic-red-apples",
		"  Fresh!! Sourdough  ": "fresh-sourdough",
		"100% Wholemeal":        "100-wholemeal",
		"Crème Fraîche":         "cr-me-fra-che",
	}
	for title, want := range cases {
		assert.Equal(t, want, slugify(title), title)
	}
}

func TestProductSlugFollowsTitle(t *testing.T) {
	setupDB(t)
	products := NewProductService()
	seller := createSeller(t, "grocer@example.com", "Grocer")

	input := ProductInput{
		Title:           "Organic Red Apples",
		RegularPrice:    6.00,
		DiscountedPrice: 5.00,
		Category:        "F",
	}
	product, err := products.Create(seller.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "organic-red-apples", product.Slug)

	input.Title = "Green Apples"
	product, err = products.Update(seller.ID, product.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "green-apples", product.Slug)
}
