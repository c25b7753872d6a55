package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"storefront_backend/internal/app/di"
	"storefront_backend/internal/app/router"
	authadapters "storefront_backend/internal/feature/auth/adapters"
	authhandler "storefront_backend/internal/feature/auth/transport/handler"
	authusecase "storefront_backend/internal/feature/auth/usecase"
	cartadapters "storefront_backend/internal/feature/cart/adapters"
	carthandler "storefront_backend/internal/feature/cart/transport/handler"
	cartusecase "storefront_backend/internal/feature/cart/usecase"
	catalogadapters "storefront_backend/internal/feature/catalog/adapters"
	cataloghandler "storefront_backend/internal/feature/catalog/transport/handler"
	catalogusecase "storefront_backend/internal/feature/catalog/usecase"
	orderadapters "storefront_backend/internal/feature/orders/adapters"
	orderhandler "storefront_backend/internal/feature/orders/transport/handler"
	orderusecase "storefront_backend/internal/feature/orders/usecase"
	"storefront_backend/internal/platform/cache"
	platformdb "storefront_backend/internal/platform/db"
	"storefront_backend/internal/platform/events"
	"storefront_backend/internal/platform/mailer"
	"storefront_backend/internal/platform/payment"
	"storefront_backend/internal/platform/pdf"
	platformredis "storefront_backend/internal/platform/redis"
	"storefront_backend/internal/platform/storage"
	"storefront_backend/internal/shared/ratelimiter"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	ctx := context.Background()

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Sessions fall back to the database, caching disabled.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// object storage
	store, err := storage.NewS3Store(ctx)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	// payment provider
	limiter := ratelimiter.NewRateLimiter(60, time.Minute)
	checkout, err := payment.NewCheckoutClient(limiter)
	if err != nil {
		log.Fatalf("payment client init failed: %v", err)
	}

	// mail delivery; optional in development
	var mail authusecase.Mailer
	if m, err := mailer.NewClient(); err != nil {
		log.Println("[WARN] Mailer not configured. Emails will be skipped:", err)
	} else {
		mail = m
	}

	// order events; optional
	var orderEvents orderusecase.OrderEventPublisher
	if pub := events.NewKafkaPublisher(); pub != nil {
		orderEvents = pub
		defer func() {
			if err := pub.Close(); err != nil {
				log.Println("[ERROR] Failed to close Kafka publisher:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	cartRepo := cartadapters.NewCartGorm(db)
	productRepo := catalogadapters.NewProductGorm(db)
	orderRepo := orderadapters.NewOrderGorm(db)

	// catalog reads go through the Redis cache
	cachedProductRepo := cache.NewCachingProductRepository(rdb, 5*time.Minute, productRepo, "products")

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, mail)
	productUC := catalogusecase.NewProductUsecase(cachedProductRepo, store, cartRepo)
	cartUC := cartusecase.NewCartUsecase(cartRepo, cachedProductRepo)
	orderUC := orderusecase.NewOrderUsecase(
		orderRepo,
		cartUC,
		userRepo,
		checkout,
		store,
		pdf.NewInvoiceRenderer(),
		orderEvents,
		orderusecase.Config{
			CheckoutSuccessURL: os.Getenv("CHECKOUT_SUCCESS_URL"),
			CheckoutCancelURL:  os.Getenv("CHECKOUT_CANCEL_URL"),
		},
	)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	productH := cataloghandler.NewProductHandler(productUC)
	cartH := carthandler.NewCartHandler(cartUC)
	orderH := orderhandler.NewOrderHandler(orderUC)

	r := router.NewRouter(sessionRepo, authH, productH, cartH, orderH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
