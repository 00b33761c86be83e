package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/leadpilot/bankleads-backend/internal/auth"
	"github.com/leadpilot/bankleads-backend/internal/config"
	"github.com/leadpilot/bankleads-backend/internal/controller"
	"github.com/leadpilot/bankleads-backend/internal/db"
	"github.com/leadpilot/bankleads-backend/internal/events"
	"github.com/leadpilot/bankleads-backend/internal/repository"
	"github.com/leadpilot/bankleads-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()
	log.Println("connected to database")

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Printf("event broker unavailable, falling back to in-process events: %v", err)
			publisher = events.NewInMemoryPublisher()
		} else {
			defer amqpPub.Close()
			publisher = amqpPub
		}
	} else {
		publisher = events.NewInMemoryPublisher()
	}

	customerRepo := &repository.CustomerRepository{DB: database}
	userRepo := &repository.UserRepository{DB: database}

	scorer := service.NewHTTPScoringClient(
		cfg.ModelAPIURL, cfg.ModelAPIBatchURL,
		cfg.ScoreTimeout, cfg.BatchScoreTimeout,
	)

	customerService := &service.CustomerService{
		Repo:   customerRepo,
		Scorer: scorer,
		Events: publisher,
	}
	importService := &service.ImportService{
		Repo:   customerRepo,
		Events: publisher,
	}
	authService := &service.AuthService{
		Users:  userRepo,
		Secret: []byte(cfg.JWTSecret),
	}

	authController := &controller.AuthController{AuthService: authService}
	customerController := &controller.CustomerController{Service: customerService}
	importController := &controller.ImportController{Service: importService}
	userController := &controller.UserController{Repo: userRepo}

	secret := []byte(cfg.JWTSecret)

	r := chi.NewRouter()

	r.Post("/auth/login", authController.Login)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(secret))

		r.Get("/customers", customerController.List)
		r.Get("/customers/{id}", customerController.Get)
		r.Patch("/customers/{id}", customerController.Update)
		r.Patch("/customers/{id}/status", customerController.UpdateStatus)
		r.Post("/import/csv", importController.ImportCSV)
		r.Get("/users", userController.List)
		r.Get("/users/{id}", userController.Get)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)

			r.Post("/auth/register", authController.Register)
			r.Post("/customers", customerController.Create)
			r.Post("/customers/import-batch", customerController.ImportBatch)
			r.Put("/users/{id}", userController.Update)
			r.Delete("/users/{id}", userController.Delete)
		})
	})

	log.Println("server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
