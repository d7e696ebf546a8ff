package redisstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	// Addr is either host:port or a redis:// URL.
	Addr     string
	Password string
	DB       int
}

// ClientOptions turns Options into go-redis options. Password and DB are only
// applied when Addr is a plain host:port; a URL carries its own.
func ClientOptions(opts Options) (*redis.Options, error) {
	if strings.HasPrefix(opts.Addr, "redis://") || strings.HasPrefix(opts.Addr, "rediss://") {
		parsed, err := redis.ParseURL(opts.Addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return parsed, nil
	}
	return &redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}, nil
}

// NewConnection dials redis and pings it once so misconfiguration fails at startup.
func NewConnection(ctx context.Context, opts Options) (*redis.Client, error) {
	clientOpts, err := ClientOptions(opts)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(clientOpts)

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}
