package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"gorm.io/gorm"

	"github.com/Andrey1104/train-station-api-service/config"
	"github.com/Andrey1104/train-station-api-service/internal/authz"
	"github.com/Andrey1104/train-station-api-service/internal/handlers"
	"github.com/Andrey1104/train-station-api-service/internal/helpers"
	"github.com/Andrey1104/train-station-api-service/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	authorizer, err := authz.New(context.Background())
	if err != nil {
		return fmt.Errorf("failed to initialize authorization: %w", err)
	}

	r := NewRouter(db, authorizer, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           withCORS(r, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("API server starting on :%s (db driver %s)", cfg.Port, cfg.DBDriver)
	return srv.ListenAndServe()
}

func withCORS(h http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(db *gorm.DB, authorizer *authz.Authorizer, cfg *config.Config) *gin.Engine {
	helpers.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.DatabaseMiddleware(db))

	r.Static("/media", cfg.MediaRoot)
	r.GET("/health", handlers.HealthCheck)

	setupUserRoutes(r, cfg)
	setupStationRoutes(r, authorizer, cfg)

	return r
}

func setupUserRoutes(r *gin.Engine, cfg *config.Config) {
	user := r.Group("/api/user")
	{
		user.POST("/register", handlers.Register)
		user.POST("/token", handlers.Login(cfg.JWTSecret, cfg.JWTTTL))
		user.GET("/me",
			middleware.JWTAuthMiddleware(cfg.JWTSecret),
			middleware.RequireAuthenticated(),
			handlers.GetProfile,
		)
	}
}

type resource struct {
	path     string
	kind     authz.Kind
	list     gin.HandlerFunc
	create   gin.HandlerFunc
	retrieve gin.HandlerFunc
	update   gin.HandlerFunc
	destroy  gin.HandlerFunc
}

func setupStationRoutes(r *gin.Engine, authorizer *authz.Authorizer, cfg *config.Config) {
	api := r.Group("/api/train_station")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	can := func(kind authz.Kind, action authz.Action) gin.HandlerFunc {
		return middleware.Authorize(authorizer, kind, action)
	}

	resources := []resource{
		{"/train_types", authz.KindTrainType, handlers.ListTrainTypes, handlers.CreateTrainType, handlers.GetTrainType, handlers.UpdateTrainType, handlers.DeleteTrainType},
		{"/trains", authz.KindTrain, handlers.ListTrains, handlers.CreateTrain, handlers.GetTrain, handlers.UpdateTrain, handlers.DeleteTrain},
		{"/stations", authz.KindStation, handlers.ListStations, handlers.CreateStation, handlers.GetStation, handlers.UpdateStation, handlers.DeleteStation},
		{"/routes", authz.KindRoute, handlers.ListRoutes, handlers.CreateRoute, handlers.GetRoute, handlers.UpdateRoute, handlers.DeleteRoute},
		{"/crews", authz.KindCrew, handlers.ListCrews, handlers.CreateCrew, handlers.GetCrew, handlers.UpdateCrew, handlers.DeleteCrew},
		{"/trips", authz.KindTrip, handlers.ListTrips, handlers.CreateTrip, handlers.GetTrip, handlers.UpdateTrip, handlers.DeleteTrip},
	}

	for _, res := range resources {
		group := api.Group(res.path)
		{
			group.GET("", can(res.kind, authz.ActionList), res.list)
			group.POST("", can(res.kind, authz.ActionCreate), res.create)
			group.GET("/:id", can(res.kind, authz.ActionRetrieve), res.retrieve)
			group.PUT("/:id", can(res.kind, authz.ActionUpdate), res.update)
			group.DELETE("/:id", can(res.kind, authz.ActionDelete), res.destroy)
		}
	}

	api.POST("/trains/:id/upload-image",
		can(authz.KindTrain, authz.ActionUploadImage),
		handlers.UploadTrainImage(helpers.ImageUploadConfig(cfg.MediaRoot)),
	)

	orders := api.Group("/orders")
	{
		orders.GET("", can(authz.KindOrder, authz.ActionList), handlers.ListOrders)
		orders.POST("", can(authz.KindOrder, authz.ActionCreate), handlers.CreateOrder)
		orders.GET("/:id", can(authz.KindOrder, authz.ActionRetrieve), handlers.GetOrder)
		orders.DELETE("/:id", can(authz.KindOrder, authz.ActionDelete), handlers.DeleteOrder)
	}
}
