package main

import (
	"log"

	"github.com/pouriamv/art-market-api/internal/bootstrap"
	"github.com/pouriamv/art-market-api/internal/config"
	"github.com/pouriamv/art-market-api/internal/server"
	"github.com/pouriamv/art-market-api/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect(cfg.DatabaseURL)

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if err := bootstrap.SeedCurrencies(db); err != nil {
		log.Fatalf("failed to seed currencies: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("redis not configured, rate limiting disabled")
	}

	srv := server.New(cfg, db, redisClient)
	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
