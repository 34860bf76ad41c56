// Package graph exposes a read-only GraphQL view of the catalogue for
// storefront clients that prefer one round trip over several REST calls.
package graph

import (
	"encoding/json"
	"net/http"

	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/repositories"
	gql "github.com/anikasharma/greenbasket/pkg/graphql"
	"github.com/graphql-go/graphql"
)

var tagType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Tag",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.Int},
		"name": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":              &graphql.Field{Type: graphql.Int, Resolve: resolveID},
		"title":           &graphql.Field{Type: graphql.String},
		"description":     &graphql.Field{Type: graphql.String},
		"regularPrice":    &graphql.Field{Type: graphql.Float, Resolve: field(func(p models.Product) interface{} { return p.RegularPrice })},
		"discountedPrice": &graphql.Field{Type: graphql.Float, Resolve: field(func(p models.Product) interface{} { return p.DiscountedPrice })},
		"category":        &graphql.Field{Type: graphql.String},
		"image":           &graphql.Field{Type: graphql.String},
		"isFeatured":      &graphql.Field{Type: graphql.Boolean, Resolve: field(func(p models.Product) interface{} { return p.IsFeatured })},
		"tags":            &graphql.Field{Type: graphql.NewList(tagType), Resolve: field(func(p models.Product) interface{} { return p.Tags })},
	},
})

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"code":  &graphql.Field{Type: graphql.String},
		"label": &graphql.Field{Type: graphql.String},
	},
})

func resolveID(p graphql.ResolveParams) (interface{}, error) {
	if product, ok := p.Source.(models.Product); ok {
		return int(product.ID), nil
	}
	return nil, nil
}

func field(f func(models.Product) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if product, ok := p.Source.(models.Product); ok {
			return f(product), nil
		}
		return nil, nil
	}
}

func rootQuery(products *repositories.ProductRepository) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"tag":      &graphql.ArgumentConfig{Type: graphql.String},
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"minPrice": &graphql.ArgumentConfig{Type: graphql.Float},
					"maxPrice": &graphql.ArgumentConfig{Type: graphql.Float},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int},
					"perPage":  &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := repositories.ProductFilter{}
					if v, ok := p.Args["category"].(string); ok {
						filter.Category = v
					}
					if v, ok := p.Args["tag"].(string); ok {
						filter.Tag = v
					}
					if v, ok := p.Args["search"].(string); ok {
						filter.Search = v
					}
					if v, ok := p.Args["minPrice"].(float64); ok {
						filter.MinPrice = v
					}
					if v, ok := p.Args["maxPrice"].(float64); ok {
						filter.MaxPrice = v
					}
					if v, ok := p.Args["page"].(int); ok {
						filter.Page = v
					}
					if v, ok := p.Args["perPage"].(int); ok {
						filter.PerPage = v
					}
					list, _, err := products.List(filter)
					return list, err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return products.FindByID(uint(id))
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out := make([]map[string]string, 0, len(models.Categories))
					for code, label := range models.Categories {
						out = append(out, map[string]string{"code": code, "label": label})
					}
					return out, nil
				},
			},
		},
	})
}

// Handler returns the POST /graphql endpoint.
func Handler() http.HandlerFunc {
	schema, err := gql.NewSchema(rootQuery(repositories.NewProductRepository()))

	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			http.Error(w, "schema unavailable", http.StatusInternalServerError)
			return
		}

		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
