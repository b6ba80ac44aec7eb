package routes

import (
	"net/http"

	"github.com/zjoart/paises/internal/config"

	"github.com/zjoart/paises/internal/countries"

	"github.com/zjoart/paises/internal/middleware"

	"github.com/zjoart/paises/internal/docs"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/gorilla/mux"
)

//	@title			Paises API
//	@version		1.0
//	@description	CRUD service for country records.

//	@license.name	MIT License
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:8080
//	@BasePath	/

// @schemes	http https
func SetUpRoutes(store countries.Store, cfg *config.Config) http.Handler {

	allowedOrigins := []string{
		"*",
	}

	// Create a new Gorilla Mux router
	router := mux.NewRouter()

	// Dynamically set Swagger host and schemes from config
	if cfg.Swagger.Host != "" {
		docs.SwaggerInfo.Host = cfg.Swagger.Host
	}
	if len(cfg.Swagger.Schemes) > 0 {
		docs.SwaggerInfo.Schemes = cfg.Swagger.Schemes
	}

	if cfg.AppEnv != "production" {
		// Serve Swagger UI only in non-production environments
		router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

		router.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
		})
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is up and running"))
	}).Methods("GET")

	var opts []countries.Option
	opts = append(opts, countries.WithWorkers(cfg.CreateWorkers))
	imagePath := cfg.SummaryImagePath
	if imagePath != "" {
		refresher := countries.NewSummaryRefresher(store, imagePath)
		opts = append(opts, countries.WithOnChange(refresher.Trigger))
		// render once so the image reflects rows present at startup
		refresher.Trigger()
	}

	// keep feature based routing in internal/countries
	countries.RegisterRoutes(router, countries.NewService(store, opts...), imagePath)

	// wrap the whole router so unmatched requests, preflights included, are logged and answered
	cors := middleware.CorsMiddleware(allowedOrigins)
	return middleware.RequestIDMiddleware(middleware.LoggingMiddleware(cors(router)))
}
