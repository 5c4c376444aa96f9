package data

import (
	"context"
	"fmt"

	"github.com/ncobase/docstore/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from the configuration. Returns nil
// when no address is configured; Redis is optional in this data layer.
func NewRedisClient(conf *config.Redis) (*redis.Client, error) {
	if conf == nil || conf.Addr == "" {
		return nil, nil
	}

	rc := redis.NewClient(&redis.Options{
		Addr:         conf.Addr,
		Username:     conf.Username,
		Password:     conf.Password,
		DB:           conf.Db,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
		DialTimeout:  conf.DialTimeout,
	})

	if err := rc.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping error: %w", err)
	}

	return rc, nil
}
