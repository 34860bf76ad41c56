// Package routes wires the HTTP surface onto the router.
package routes

import (
	"net/http"

	"github.com/anikasharma/greenbasket/app/controllers"
	"github.com/anikasharma/greenbasket/app/graph"
	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/pkg/ctx"
	"github.com/anikasharma/greenbasket/pkg/metrics"
	"github.com/anikasharma/greenbasket/pkg/middleware"
	"github.com/anikasharma/greenbasket/pkg/rbac"
	"github.com/anikasharma/greenbasket/pkg/router"
)

// RegisterAPI mounts every route. Three tiers: public, authenticated, and
// seller role.
func RegisterAPI(r *router.Router) {
	auth := controllers.NewAuthController()
	catalog := controllers.NewCatalogController()
	cart := controllers.NewCartController()
	checkout := controllers.NewCheckoutController()
	orders := controllers.NewOrderController()
	reviews := controllers.NewReviewController()
	profile := controllers.NewProfileController()
	seller := controllers.NewSellerController()
	streams := controllers.NewStreamController()

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok")) //nolint:errcheck
	})
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Post("/graphql", "graphql", graph.Handler())

	api := r.Group("/api")

	// Public
	api.Post("/register", "auth.register", ctx.Wrap(auth.Register))
	api.Post("/login", "auth.login", ctx.Wrap(auth.Login))
	api.Post("/refresh", "auth.refresh", ctx.Wrap(auth.Refresh))

	api.Get("/products", "catalog.list", ctx.Wrap(catalog.List))
	api.Get("/products/featured", "catalog.featured", ctx.Wrap(catalog.Featured))
	api.Get("/products/{id}", "catalog.show", ctx.Wrap(catalog.Show))
	api.Get("/products/{id}/related", "catalog.related", ctx.Wrap(catalog.Related))
	api.Get("/products/{id}/reviews", "reviews.list", ctx.Wrap(reviews.List))
	api.Get("/products/{id}/questions", "questions.list", ctx.Wrap(reviews.Questions))
	api.Get("/categories", "catalog.categories", ctx.Wrap(catalog.Categories))

	// Authenticated
	authed := api.Group("", middleware.Auth)

	authed.Get("/cart", "cart.show", ctx.Wrap(cart.Show))
	authed.Post("/cart/items", "cart.add", ctx.Wrap(cart.AddItem))
	authed.Patch("/cart/items/{item}", "cart.update", ctx.Wrap(cart.UpdateItem))
	authed.Delete("/cart/items/{item}", "cart.remove", ctx.Wrap(cart.RemoveItem))
	authed.Delete("/cart", "cart.clear", ctx.Wrap(cart.Clear))

	authed.Post("/checkout", "checkout.place", ctx.Wrap(checkout.Place))
	authed.Get("/orders", "orders.list", ctx.Wrap(orders.List))
	authed.Get("/orders/stream", "orders.stream", ctx.Wrap(streams.Orders))
	authed.Get("/orders/{number}", "orders.show", ctx.Wrap(orders.Show))

	authed.Post("/products/{id}/reviews", "reviews.create", ctx.Wrap(reviews.Create))
	authed.Post("/products/{id}/questions", "questions.ask", ctx.Wrap(reviews.Ask))

	authed.Get("/profile", "profile.show", ctx.Wrap(profile.Show))
	authed.Put("/profile", "profile.update", ctx.Wrap(profile.Update))
	authed.Post("/profile/image", "profile.image", ctx.Wrap(profile.UploadImage))
	authed.Post("/password", "auth.password", ctx.Wrap(auth.ChangePassword))

	authed.Post("/seller/register", "seller.register", ctx.Wrap(seller.Register))

	// Seller role
	shop := api.Group("/seller", middleware.Auth, rbac.HasRole(models.RoleSeller))

	shop.Get("/dashboard", "seller.dashboard", ctx.Wrap(seller.Dashboard))
	shop.Get("/profile", "seller.profile", ctx.Wrap(seller.Profile))
	shop.Put("/profile", "seller.profile.update", ctx.Wrap(seller.UpdateProfile))
	shop.Post("/profile/logo", "seller.profile.logo", ctx.Wrap(seller.UploadLogo))

	shop.Get("/products", "seller.products", ctx.Wrap(seller.Products))
	shop.Post("/products", "seller.products.create", ctx.Wrap(seller.CreateProduct))
	shop.Put("/products/{id}", "seller.products.update", ctx.Wrap(seller.UpdateProduct))
	shop.Delete("/products/{id}", "seller.products.delete", ctx.Wrap(seller.DeleteProduct))
	shop.Post("/products/{id}/image", "seller.products.image", ctx.Wrap(seller.UploadProductImage))

	shop.Get("/orders", "seller.orders", ctx.Wrap(seller.Orders))
	shop.Get("/orders/stream", "seller.orders.stream", ctx.Wrap(seller.OrderStream))
	shop.Get("/orders/{id}", "seller.orders.show", ctx.Wrap(seller.Order))
	shop.Post("/orders/{id}/status", "seller.orders.status", ctx.Wrap(seller.UpdateOrderStatus))

	shop.Get("/questions", "seller.questions", ctx.Wrap(seller.Questions))
	shop.Post("/questions/{id}/answer", "seller.questions.answer", ctx.Wrap(seller.AnswerQuestion))
}
