package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/enrolld/enrolld/config"
	"github.com/redis/go-redis/v9"
)

// Connect establishes the Redis connection and verifies connectivity with a
// bounded retry (fixed delay between attempts). Store-unavailable after the
// final attempt is fatal to the caller.
func Connect(cfg config.RedisConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	opt.DB = cfg.DB

	rc := redis.NewClient(opt)

	var lastErr error
	for attempt := 1; attempt <= cfg.ConnectRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rc.Ping(ctx).Err()
		cancel()
		if err == nil {
			log.Printf("Redis connection established (db=%d)", cfg.DB)
			return rc, nil
		}

		lastErr = err
		log.Printf("Redis connection attempt %d/%d failed: %v", attempt, cfg.ConnectRetries, err)
		if attempt < cfg.ConnectRetries {
			time.Sleep(cfg.RetryDelay)
		}
	}

	_ = rc.Close()
	return nil, fmt.Errorf("could not connect to redis after %d attempts: %w", cfg.ConnectRetries, lastErr)
}

// StartHealthMonitor starts a background goroutine that periodically pings
// Redis to detect connectivity issues. The returned cancel function stops it.
func StartHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}
