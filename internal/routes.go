package internal

import (
	"net/http"
	"probpick/internal/controllers"
	"probpick/internal/providers"
)

func InitRoutes(commandController *controllers.CommandController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/select", http.HandlerFunc(commandController.Select))
	routers.Get("/history", http.HandlerFunc(commandController.History))
	routers.Get("/stats", http.HandlerFunc(commandController.Stats))
	routers.Post("/reset", http.HandlerFunc(commandController.Reset))
	routers.Get("/archives", http.HandlerFunc(commandController.Archives))
	return routers
}
