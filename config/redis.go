package config

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis opens the occupied-dates cache client. Redis is optional:
// without REDIS_URL the engine computes every calendar request from the
// database and nil is returned.
func ConnectRedis() *redis.Client {
	addr := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if addr == "" {
		logrus.Info("REDIS_URL not set, occupied-dates caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.Warnf("redis ping failed (%v), occupied-dates caching disabled", err)
		return nil
	}

	logrus.Infof("redis connected at %s", addr)
	return client
}
