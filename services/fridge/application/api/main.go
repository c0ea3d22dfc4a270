package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/smartfridge/pkg/app"
	"github.com/ghuser/smartfridge/pkg/config"
	"github.com/ghuser/smartfridge/services/fridge/application/handlers"
	appsvcs "github.com/ghuser/smartfridge/services/fridge/application/services"
)

// BasePath is where the fridge endpoints are mounted.
const BasePath = "/api/smart-fridge"

// FridgeRoutes registers the fridge endpoints on the provided chi router.
func FridgeRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a.Config != nil && a.Config.Environment == config.EnvProduction)
}

// Mount registers the fridge endpoints backed by svcs under BasePath.
func Mount(r chi.Router, svcs *appsvcs.Services, production bool) {
	r.Route(BasePath, func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Post("/", handlers.NewPostItemHandler(svcs, production).Execute)
			r.Get("/", handlers.NewGetItemsHandler(svcs, production).Execute)
			r.Delete("/{itemID}", handlers.NewDeleteItemHandler(svcs, production).Execute)
		})
		r.Route("/item-types", func(r chi.Router) {
			r.Get("/{typeID}", handlers.NewGetItemTypeHandler(svcs, production).Execute)
			r.Delete("/{typeID}", handlers.NewDeleteItemTypeHandler(svcs, production).Execute)
		})
	})
}
