package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"fixitflow/cmd/app"
	"fixitflow/internal/config"
	handlers "fixitflow/internal/handler"
	"fixitflow/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, db, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/verify", handler.Verify).Methods(http.MethodGet)

	complaints := router.PathPrefix("/api/complaints").Subrouter()
	complaints.Use(handler.AuthMiddleware)
	complaints.HandleFunc("/create", handler.CreateComplaint).Methods(http.MethodPost)
	complaints.HandleFunc("/my-complaints", handler.MyComplaints).Methods(http.MethodGet)
	complaints.HandleFunc("/{id}", handler.GetComplaint).Methods(http.MethodGet)

	admin := router.PathPrefix("/complaints/admin").Subrouter()
	admin.Use(handler.AuthMiddleware, handler.AdminOnly)
	admin.HandleFunc("/{id}/status", handler.AdminUpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/all", handler.AdminListComplaints).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		router,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
