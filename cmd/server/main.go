package main

import (
	"log"
	"net/http"

	"storedash/internal/config"
	"storedash/internal/controllers"
	"storedash/internal/logger"
	"storedash/internal/middleware"
	"storedash/internal/notify"
	"storedash/internal/routes"
)

func main() {
	// Structured logging to a rotating file
	logger.Setup()

	cfg := config.Load()
	middleware.SetSecret(cfg.JWTSecret)

	db, err := config.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	sms := notify.NewVonageClient(cfg.SMS)
	push := notify.NewFCMClient(cfg.Push)

	r := routes.SetupRouter(routes.Controllers{
		Auth:    controllers.NewAuthController(db),
		Request: controllers.NewRequestController(db, sms),
		Order:   controllers.NewOrderController(db),
		Trip:    controllers.NewTripController(db, push),
		Utility: controllers.NewUtilityController(db),
	})

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Printf("🚀 Server running at %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, handler))
}
