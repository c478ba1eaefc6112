package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/tfboppong-code/joeythebrand/auth"
	"github.com/tfboppong-code/joeythebrand/cart"
	"github.com/tfboppong-code/joeythebrand/catalog"
	"github.com/tfboppong-code/joeythebrand/checkout"
	productcontroller "github.com/tfboppong-code/joeythebrand/controllers/product"
	"github.com/tfboppong-code/joeythebrand/db"
	"github.com/tfboppong-code/joeythebrand/models"
	"github.com/tfboppong-code/joeythebrand/paystack"
	"github.com/tfboppong-code/joeythebrand/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	ctx := context.Background()

	// Firebase auth + Firestore
	authClient, fsClient, err := auth.NewFirebaseClients(ctx)
	if err != nil {
		log.Fatalf("❌ Firebase init failed: %v", err)
	}
	defer fsClient.Close()

	users := db.NewUserRepository(fsClient)
	products := db.NewProductRepository(fsClient)
	orders := db.NewOrderRepository(fsClient)

	// Live product catalog
	reader := catalog.NewReader(catalog.NewFirestoreSource(fsClient))
	defer reader.Close()
	feed := productcontroller.NewFeed(reader)
	defer feed.Close()

	// Cart persistence
	carts := cart.NewManager(initCartStorage())

	// Sessions + idle watchdog
	resolver := auth.NewResolver(authClient, users)
	stopWatchdog := resolver.StartWatchdog()
	defer stopWatchdog()

	// Ending a session ends its cart scope; guest carts are dropped with it.
	cancelCartSync := resolver.OnChange(func(scope string, identity *models.Identity) {
		if identity == nil {
			carts.EndScope(context.Background(), scope)
		}
	})
	defer cancelCartSync()

	// Payments
	payClient := paystack.NewClient(os.Getenv("PAYSTACK_SECRET_KEY"), os.Getenv("PAYSTACK_CALLBACK_URL"))
	orch := checkout.New(os.Getenv("PAYSTACK_PUBLIC_KEY"), payClient, payClient, orders)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Resolver: resolver,
		Toolkit:  auth.NewIdentityToolkit(),
		Catalog:  reader,
		Feed:     feed,
		Carts:    carts,
		Checkout: orch,
		Gateway:  payClient,
		Products: products,
		Orders:   orders,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initCartStorage connects cart persistence to Redis, or falls back to the
// in-process store when no Redis address is configured.
func initCartStorage() cart.Storage {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, carts are kept in memory only")
		return cart.NewMemoryStorage()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}
	log.Printf("✅ Cart storage connected to Redis at %s", addr)
	return cart.NewRedisStorage(rdb)
}
