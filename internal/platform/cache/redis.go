package cache

import (
	"context"
	"fmt"
	"log"

	"blogforge/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// RDB stays nil when the category cache is disabled; consumers must treat a
// nil client as "no cache".
var RDB *redis.Client

func Connect() {
	if !config.AppConfig.CacheEnabled {
		log.Println("Category cache disabled, skipping Redis connection")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	_, err := RDB.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
}

func Close() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}
