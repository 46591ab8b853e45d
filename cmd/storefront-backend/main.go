package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdsweden/storefront-backend/internal/api/handlers"
	"github.com/mdsweden/storefront-backend/internal/api/middleware"
	"github.com/mdsweden/storefront-backend/internal/cache"
	"github.com/mdsweden/storefront-backend/internal/config"
	"github.com/mdsweden/storefront-backend/internal/health"
	"github.com/mdsweden/storefront-backend/internal/metrics"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	service "github.com/mdsweden/storefront-backend/internal/services"
	"github.com/mdsweden/storefront-backend/pkg/payment"
	"github.com/mdsweden/storefront-backend/pkg/sendgrid"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	jwtKey := []byte(cfg.Security.JWTKey)

	// Payment providers
	stripeProvider := payment.NewStripeProvider(&cfg.Stripe)
	providers := map[string]payment.Provider{
		"stripe": stripeProvider,
		"swish":  payment.NewSwishProvider(&cfg.Swish),
		"sumup":  payment.NewSumUpProvider(&cfg.SumUp),
	}

	webhookVerifier, _ := stripeProvider.(service.WebhookVerifier)

	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Services
	pricing := service.NewPricingEngine()
	notificationService := service.NewNotificationService(repos.Notification, repos.User, repos.Product, emailService)
	userService := service.NewUserService(repos.User, rateLimitRepo, notificationService, jwtKey)
	productService := service.NewProductService(repos.Product, productCache, &cfg.Cache)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	voucherService := service.NewVoucherService(repos.Voucher)
	deliveryService := service.NewDeliveryService(repos.DeliverySlot)
	addressService := service.NewAddressService(repos.Address)
	paymentService := service.NewPaymentService(repos.Payment, repos.Order, providers, webhookVerifier)
	orderService := service.NewOrderService(
		repos.Order, repos.Cart, repos.Product, repos.DeliverySlot, repos.Address,
		pricing, voucherService, paymentService, notificationService, cfg.Checkout.Currency,
	)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	voucherHandler := handlers.NewVoucherHandler(voucherService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	addressHandler := handlers.NewAddressHandler(addressService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))

	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.UpdateProduct()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/search", productHandler.SearchProducts())
	routerMux.HandleFunc("GET /api/v1/products/low-stock", authMiddleware.Authenticate(productHandler.ListLowStock()))

	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.RemoveItem()))

	routerMux.HandleFunc("POST /api/v1/vouchers", authMiddleware.Authenticate(voucherHandler.CreateVoucher()))
	routerMux.HandleFunc("POST /api/v1/vouchers/apply", authMiddleware.Authenticate(voucherHandler.ApplyVoucher()))
	routerMux.HandleFunc("GET /api/v1/vouchers", authMiddleware.Authenticate(voucherHandler.ListVouchers()))
	routerMux.HandleFunc("DELETE /api/v1/vouchers/{id}", authMiddleware.Authenticate(voucherHandler.DeleteVoucher()))

	routerMux.HandleFunc("POST /api/v1/delivery-slots", authMiddleware.Authenticate(deliveryHandler.CreateSlot()))
	routerMux.HandleFunc("GET /api/v1/delivery-slots/{id}", deliveryHandler.GetSlot())
	routerMux.HandleFunc("GET /api/v1/delivery-slots", deliveryHandler.ListSlots())

	routerMux.HandleFunc("POST /api/v1/addresses", authMiddleware.Authenticate(addressHandler.CreateAddress()))
	routerMux.HandleFunc("GET /api/v1/addresses/{id}", authMiddleware.Authenticate(addressHandler.GetAddress()))
	routerMux.HandleFunc("GET /api/v1/addresses", authMiddleware.Authenticate(addressHandler.ListAddresses()))

	routerMux.HandleFunc("POST /api/v1/orders/summary", authMiddleware.Authenticate(orderHandler.Summary()))
	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(orderHandler.CreateOrder()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", authMiddleware.Authenticate(orderHandler.UpdateOrderStatus()))

	routerMux.HandleFunc("POST /api/v1/payments", authMiddleware.Authenticate(paymentHandler.CreatePayment()))
	routerMux.HandleFunc("POST /api/v1/payments/refund", authMiddleware.Authenticate(paymentHandler.RefundPayment()))
	routerMux.HandleFunc("GET /api/v1/payments/{id}", authMiddleware.Authenticate(paymentHandler.GetPayment()))
	routerMux.HandleFunc("GET /api/v1/payments", authMiddleware.Authenticate(paymentHandler.ListPayments()))
	routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.HandleStripeWebhook())

	routerMux.HandleFunc("POST /api/v1/notifications/email", authMiddleware.Authenticate(notificationHandler.SendEmail()))
	routerMux.HandleFunc("GET /api/v1/notifications", authMiddleware.Authenticate(notificationHandler.ListNotifications()))
	routerMux.HandleFunc("PATCH /api/v1/notifications/{id}/read", authMiddleware.Authenticate(notificationHandler.MarkRead()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}
}
