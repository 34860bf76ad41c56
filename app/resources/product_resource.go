// Package resources shapes models for the public API.
package resources

import (
	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/collection"
	"github.com/anikasharma/greenbasket/pkg/resource"
	"github.com/anikasharma/greenbasket/pkg/storage"
)

// ProductResource renders a catalogue product: category code expanded to
// its label, image path resolved to a servable URL, tags flattened to
// names.
type ProductResource struct{ resource.Base }

func (r *ProductResource) ToArray(v interface{}) resource.Map {
	p, ok := v.(models.Product)
	if !ok {
		return resource.Map{}
	}

	image := ""
	if p.Image != "" {
		image = storage.URL(p.Image)
	}

	return resource.Map{
		"id":               p.ID,
		"title":            p.Title,
		"description":      p.Description,
		"regular_price":    p.RegularPrice,
		"discounted_price": p.DiscountedPrice,
		"category":         p.Category,
		"category_label":   models.Categories[p.Category],
		"image":            image,
		"is_featured":      p.IsFeatured,
		"seller_id":        p.SellerID,
		"tags":             collection.Map(p.Tags, func(t models.Tag) string { return t.Name }),
	}
}
