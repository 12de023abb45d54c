package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/marketbay/storefront/internal/auth"
	c "github.com/marketbay/storefront/internal/cache"
	"github.com/marketbay/storefront/internal/cart"
	"github.com/marketbay/storefront/internal/catalog"
	"github.com/marketbay/storefront/internal/checkout"
	"github.com/marketbay/storefront/internal/httpapi"
	"github.com/marketbay/storefront/internal/identity"
	"github.com/marketbay/storefront/internal/orders"
	"github.com/marketbay/storefront/internal/publisher"
	"github.com/marketbay/storefront/internal/reorder"
	"github.com/marketbay/storefront/internal/storage"
)

type Config struct {
	HTTPPort           string
	MongoURI           string
	MongoDBName        string
	RedisAddr          string
	RedisPassword      string
	KafkaBrokers       []string
	RecommenderURL     string
	JWTSecret          string
	TokenTTL           time.Duration
	RequestTimeout     time.Duration
	RecommenderTimeout time.Duration
	ShutdownTimeout    time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:        getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		RecommenderURL:     getEnv("RECOMMENDER_URL", "http://localhost:8090"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-only-secret"),
		TokenTTL:           30 * time.Minute,
		RequestTimeout:     30 * time.Second,
		RecommenderTimeout: 5 * time.Second,
		ShutdownTimeout:    10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoDB, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	// Repositories
	catalogRepo := catalog.NewMongoRepository(mongoDB)
	cartRepo := cart.NewMongoRepository(mongoDB)
	ordersRepo := orders.NewMongoRepository(mongoDB)
	userRepo := auth.NewMongoRepository(mongoDB)
	intentRepo := checkout.NewMongoIntents(mongoDB)
	outboxRepo := publisher.NewMongoOutbox(mongoDB)

	if err := storage.EnsureIndexes(ctx, cartRepo, ordersRepo, userRepo, outboxRepo); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Services
	resolver := identity.NewResolver(catalogRepo)
	cartService := cart.NewService(cartRepo, c.NewRedisCache(redisClient), resolver)
	ordersService := orders.NewService(ordersRepo)
	checkoutService := checkout.NewService(cartService, resolver, ordersRepo, intentRepo, outboxRepo)
	recommender := reorder.NewBreakerRecommender(
		reorder.NewHTTPRecommender(cfg.RecommenderURL, nil),
		cfg.RecommenderTimeout,
	)
	reorderService := reorder.NewService(ordersService, cartService, recommender)
	authService := auth.NewService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	// Background loops
	poller := publisher.NewOutboxPoller(outboxRepo, cfg.KafkaBrokers...)
	defer poller.Close()
	go poller.Run(ctx)

	recoverer := checkout.NewRecoverer(intentRepo, cartService)
	go recoverer.Run(ctx)

	// HTTP surface
	router := httpapi.NewRouter(
		httpapi.NewAuthHandler(authService, cfg.RequestTimeout),
		httpapi.NewCartHandler(cartService, cfg.RequestTimeout),
		httpapi.NewOrdersHandler(checkoutService, ordersService, cfg.RequestTimeout),
		httpapi.NewReorderHandler(reorderService, cfg.RequestTimeout),
		authService,
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}
	log.Println("storefront stopped")
}
