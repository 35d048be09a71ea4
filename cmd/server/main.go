package main

import (
	"log"
	"net/http"

	"yellowgate/internal/checkout"
	"yellowgate/internal/config"
	"yellowgate/internal/db"
	"yellowgate/internal/logger"
	"yellowgate/internal/middleware"
	"yellowgate/internal/order"
	"yellowgate/internal/reconcile"
	"yellowgate/internal/webhook"
	"yellowgate/internal/yellow"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	signer := yellow.NewSigner(cfg.YellowAPIKey, cfg.YellowAPISecret)
	gateway := yellow.NewClient(signer, cfg.StoreBaseURL)

	checkoutSvc := checkout.NewService(orderSvc, gateway, checkout.NewMemoryCache())
	checkoutHandler := checkout.NewHandler(checkoutSvc)

	reconciler := reconcile.NewReconciler(orderSvc)
	ipnHandler := webhook.NewHandler(signer, reconciler, gateway.CallbackURL())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /checkout/pay", checkoutHandler.PayHandler)
	mux.HandleFunc("POST "+yellow.CallbackPath, ipnHandler.IPNHandler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			middleware.RateLimitMiddleware(mux),
		),
	)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	log.Printf("Yellow gateway listening on :%s (callback %s)", port, gateway.CallbackURL())
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
