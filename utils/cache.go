// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"wanderstay/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// HoldClient is the dedicated client for room-night hold locks.
	HoldClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitHoldCache initializes the Redis client used for inventory hold locks.
func InitHoldCache() {
	HoldClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisHoldDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := HoldClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Hold): %v", err)
	}
}

// GetHoldClient returns the Redis client for inventory hold locks.
func GetHoldClient() *redis.Client {
	if HoldClient == nil {
		InitHoldCache()
	}
	return HoldClient
}
