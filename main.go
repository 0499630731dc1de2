package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/travelxplore/travelxplore-api/config"
	"github.com/travelxplore/travelxplore-api/internal/cache"
	"github.com/travelxplore/travelxplore-api/internal/handler"
	"github.com/travelxplore/travelxplore-api/internal/middleware"
	"github.com/travelxplore/travelxplore-api/internal/notifier"
	"github.com/travelxplore/travelxplore-api/internal/payment"
	"github.com/travelxplore/travelxplore-api/internal/repository"
	"github.com/travelxplore/travelxplore-api/internal/service"
	"github.com/travelxplore/travelxplore-api/internal/upload"
	"github.com/travelxplore/travelxplore-api/pkg/database"
	"github.com/travelxplore/travelxplore-api/pkg/rabbitmq"
	"github.com/travelxplore/travelxplore-api/pkg/token"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg)

	db := database.NewPostgresDB(cfg.DSN(), log)

	// Notification events go through the broker; the in-process mailer
	// consumes them so delivery survives a slow SMTP hop.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	notifier.NewMailer(log).Start(msgs)

	events := notifier.NewEvents(publisher, log)

	// Catalog cache is optional; a nil cache is a permanent miss
	var catalogCache *cache.CatalogCache
	if cfg.RedisAddr != "" {
		catalogCache = cache.NewCatalogCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			time.Duration(cfg.CatalogCacheTTL)*time.Second)
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpireHours)
	stripeProvider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	destinationRepo := repository.NewDestinationRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	contactRepo := repository.NewContactRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, tokens)
	catalogSvc := service.NewCatalogService(destinationRepo, packageRepo, catalogCache)
	bookingSvc := service.NewBookingService(bookingRepo, packageRepo, stripeProvider, events, cfg.BaseURL)
	contactSvc := service.NewContactService(contactRepo)
	newsletterSvc := service.NewNewsletterService(newsletterRepo, events)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewErrorHandler(cfg.Env)
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}).Info("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.Static("/images/uploads", cfg.UploadDir)

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "travelxplore-api"})
	})

	requireAuth := middleware.RequireAuth(tokens)
	requireAdmin := echo.MiddlewareFunc(middleware.RequireAdmin)

	api := e.Group("/api")
	handler.NewAuthHandler(authSvc, cfg.IsProduction()).RegisterRoutes(api.Group("/auth"), requireAuth)
	handler.NewDestinationHandler(catalogSvc, uploads).RegisterRoutes(api.Group("/destinations"), requireAuth, requireAdmin)
	handler.NewPackageHandler(catalogSvc, uploads).RegisterRoutes(api.Group("/packages"), requireAuth, requireAdmin)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api.Group("/bookings"), requireAuth, requireAdmin)
	handler.NewContactHandler(contactSvc).RegisterRoutes(api.Group("/contact"), requireAuth, requireAdmin)
	handler.NewNewsletterHandler(newsletterSvc).RegisterRoutes(api.Group("/newsletter"), requireAuth, requireAdmin)

	log.Infof("TravelXplore API starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
