// File: wanderstay/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wanderstay/config"
	"wanderstay/cron"
	"wanderstay/database"
	bookingRepoPkg "wanderstay/database/repository/booking"
	hotelRepoPkg "wanderstay/database/repository/hotel"
	paymentRepoPkg "wanderstay/database/repository/payment"
	userRepoPkg "wanderstay/database/repository/user"
	"wanderstay/handlers"
	"wanderstay/middleware"
	"wanderstay/routes"
	"wanderstay/services/booking"
	"wanderstay/services/events"
	"wanderstay/services/notification"
	"wanderstay/services/payment"
	"wanderstay/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	defer database.CloseDB()
	utils.InitCache()
	utils.InitHoldCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// Repositories.
	bookings := bookingRepoPkg.NewMongoBookingRepo()
	payments := paymentRepoPkg.NewMongoPaymentRepo()
	hotels := hotelRepoPkg.NewMongoHotelRepo()
	users := userRepoPkg.NewMongoUserRepo()

	// Domain events.
	publisher := events.NewKafkaPublisher(config.AppConfig.KafkaBrokers, config.AppConfig.KafkaEventTopic, logger)
	defer publisher.Close()

	// Payment gateway client, explicitly constructed and injected.
	var gateway payment.Gateway
	switch config.AppConfig.GatewayProvider {
	case "stripe":
		gateway = payment.StripeGateway{}
	default:
		gateway = payment.NewHTTPGateway(
			config.AppConfig.GatewayBaseURL,
			config.AppConfig.GatewayKeyID,
			config.AppConfig.GatewaySecret,
		)
	}

	refundQueue := cron.NewRefundEnqueuer()
	defer refundQueue.Close()

	paymentService := &payment.DefaultPaymentService{
		Bookings:      bookings,
		Payments:      payments,
		Gateway:       gateway,
		Events:        publisher,
		Refunds:       refundQueue,
		Logger:        logger,
		GatewayKeyID:  config.AppConfig.GatewayKeyID,
		GatewaySecret: config.AppConfig.GatewaySecret,
	}
	cron.InitRefundWorker(paymentService)

	bookingService := &booking.DefaultBookingService{
		Repo:     bookings,
		Payments: payments,
		Validator: &booking.Validator{
			Hotels:          hotels,
			MaxAdvanceDays:  config.AppConfig.MaxAdvanceBookingDays,
			MinAdvanceHours: config.AppConfig.MinAdvanceBookingHours,
		},
		Hold:        booking.NoopHold{},
		Refunds:     refundQueue,
		Events:      publisher,
		Logger:      logger,
		PlatformFee: config.AppConfig.PlatformFee,
		TaxBPS:      config.AppConfig.TaxRateBPS,
	}

	// Notification dispatch consumes booking events off the topic.
	notifier := &notification.LogNotifier{Users: users, Logger: logger}
	consumer := notification.NewConsumer(
		config.AppConfig.KafkaBrokers,
		config.AppConfig.KafkaGroupID,
		config.AppConfig.KafkaEventTopic,
		notifier,
		logger,
	)
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(consumerCtx); err != nil {
			logger.Sugar().Errorf("main: notification consumer stopped: %v", err)
		}
	}()

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)
	routes.RegisterRoutes(router, bookingHandler, paymentHandler)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetHoldClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stopConsumer()
	if err := consumer.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close notification consumer: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
