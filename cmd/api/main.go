package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rcardo11/leadpilot/internal/config"
	"github.com/rcardo11/leadpilot/internal/infra/cache"
	"github.com/rcardo11/leadpilot/internal/infra/database"
	"github.com/rcardo11/leadpilot/internal/infra/http/handlers"
	"github.com/rcardo11/leadpilot/internal/infra/http/middleware"
	"github.com/rcardo11/leadpilot/internal/infra/integration/apollo"
	"github.com/rcardo11/leadpilot/internal/infra/integration/razorpay"
	"github.com/rcardo11/leadpilot/internal/infra/integration/stripe"
	"github.com/rcardo11/leadpilot/internal/infra/mail"
	"github.com/rcardo11/leadpilot/internal/infra/queue"
	"github.com/rcardo11/leadpilot/internal/infra/worker"
	"github.com/rcardo11/leadpilot/internal/region"
	"github.com/rcardo11/leadpilot/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer rabbitMQ.Close()

	// Dedup survives restarts only with Redis; without an address the
	// in-process fallback keeps dev setups working.
	var processed usecase.ProcessedEventCache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisCache.Close()
		processed = redisCache
	} else {
		log.Println("no REDIS_ADDR configured, using in-memory webhook dedup")
		processed = cache.NewMemoryCache()
	}

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	dealRepo := database.NewDealRepository(db)

	// Regional dispatchers and payment gateways
	dispatchers := usecase.Dispatchers{
		region.ProviderOutlook: mail.NewEmailSender(region.ProviderOutlook,
			cfg.OutlookHost, cfg.OutlookPort, cfg.OutlookUser, cfg.OutlookPass),
		region.ProviderGmail: mail.NewEmailSender(region.ProviderGmail,
			cfg.GmailHost, cfg.GmailPort, cfg.GmailUser, cfg.GmailPass),
	}

	stripeClient := stripe.NewClient(cfg.StripeAPIKey, cfg.StripeURL, cfg.StripeWebhookSecret)
	razorpayClient := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret,
		cfg.RazorpayURL, cfg.RazorpayWebhookSecret)

	gateways := usecase.Gateways{
		region.ProcessorStripe:   stripeClient,
		region.ProcessorRazorpay: razorpayClient,
	}
	parsers := map[string]usecase.WebhookParser{
		region.ProcessorStripe:   stripeClient,
		region.ProcessorRazorpay: razorpayClient,
	}

	apolloClient := apollo.NewClient(cfg.ApolloAPIKey, cfg.ApolloURL)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	locks := usecase.NewLeadLocker()

	// Use cases
	searchUC := usecase.NewSearchLeadsUseCase(leadRepo, apolloClient)
	startUC := usecase.NewStartCampaignUseCase(leadRepo, dispatchers, locks,
		cfg.CalendlyLink, cfg.FollowUpDays.Duration())
	tickUC := usecase.NewFollowUpTickUseCase(leadRepo, dispatchers, locks,
		cfg.CalendlyLink, cfg.FollowUpDays.Duration(), cfg.MaxFollowUps)
	replyUC := usecase.NewHandleReplyUseCase(leadRepo, dispatchers, locks, cfg.CalendlyLink)
	paymentUC := usecase.NewCreatePaymentLinkUseCase(leadRepo, dealRepo, gateways,
		dispatchers, locks, cfg.CalendlyLink)
	confirmUC := usecase.NewConfirmPaymentUseCase(leadRepo, dealRepo, dispatchers,
		locks, processed, cfg.CalendlyLink)
	analyticsUC := usecase.NewAnalyticsUseCase(leadRepo)

	// Background workers
	conversionWorker := queue.NewWorker(rabbitMQ.Ch, confirmUC)
	go conversionWorker.Start(queue.QueueName)

	expirationWorker := worker.NewLinkExpirationWorker(db)
	go expirationWorker.Start(context.Background())

	// Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, searchUC)
	outreachHandler := handlers.NewOutreachHandler(startUC, tickUC)
	paymentHandler := handlers.NewPaymentHandler(paymentUC)
	webhookHandler := handlers.NewWebhookHandler(replyUC, parsers, producer)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, cfg)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))
	r.Use(middleware.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Post("/leads/search", leadHandler.Search)
		r.Post("/leads", leadHandler.Capture)
		r.Get("/leads", leadHandler.List)
		r.Post("/lead/update", leadHandler.Update)

		r.Post("/outreach/start", outreachHandler.Start)
		r.Post("/outreach/tick", outreachHandler.Tick)

		r.Post("/payment/create", paymentHandler.CreateLink)

		r.Get("/analytics", analyticsHandler.Handle)

		r.Post("/webhook/email", webhookHandler.HandleEmailReply)
		r.Post("/webhook/payment/{processor}", webhookHandler.HandlePayment)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	log.Printf("LeadPilot listening on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatal(err)
	}
}
