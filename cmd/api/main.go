package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eggnunes/crmidea-sub000/internal/infra/database"
	"github.com/eggnunes/crmidea-sub000/internal/infra/http/handlers"
	"github.com/eggnunes/crmidea-sub000/internal/infra/http/middleware"
	"github.com/eggnunes/crmidea-sub000/internal/infra/integration/whatsapp"
	"github.com/eggnunes/crmidea-sub000/internal/infra/mail"
	"github.com/eggnunes/crmidea-sub000/internal/infra/queue"
	"github.com/eggnunes/crmidea-sub000/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no Postgres: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	productRepo := database.NewProductRepository(db)
	presetRepo := database.NewMappingPresetRepository(db)

	// 2. Gateways e Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	whatsappClient := whatsapp.NewClient()
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), envOrInt("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	// 3. Worker (consome a fila de follow-up e dispara WhatsApp/e-mail)
	worker := queue.NewWorker(rabbitMQ.Ch, whatsappClient, mailSender)
	go worker.Start(queue.QueueName)

	// 4. UseCases
	importUC := usecase.NewImportLeadsUseCase(leadRepo, productRepo, producer)

	// 5. Handlers
	importHandler := handlers.NewImportHandler(importUC)
	presetHandler := handlers.NewPresetHandler(presetRepo)
	productHandler := handlers.NewProductHandler(productRepo)
	leadHandler := handlers.NewLeadHandler(leadRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}))

	r.Post("/import/preview", importHandler.HandlePreview)
	r.Post("/import/confirm", importHandler.HandleConfirm)
	r.Get("/presets", presetHandler.HandleList)
	r.Post("/presets", presetHandler.HandleCreate)
	r.Delete("/presets/{presetId}", presetHandler.HandleDelete)
	r.Get("/products", productHandler.HandleList)
	r.Post("/leads/capture", leadHandler.CaptureLead)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Server CRM IDEA rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
