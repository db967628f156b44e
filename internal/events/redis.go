package events

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
)

// DefaultChannel is used when the config leaves the channel empty.
const DefaultChannel = "agency-admin.events"

// RedisSink publishes events as JSON on a redis pub/sub channel.
type RedisSink struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisSink connects to the configured redis server.
func NewRedisSink(cfg config.Redis) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return NewRedisSinkFrom(client, cfg.Channel)
}

// NewRedisSinkFrom wraps an existing client.
func NewRedisSinkFrom(client redis.UniversalClient, channel string) *RedisSink {
	if channel == "" {
		channel = DefaultChannel
	}

	return &RedisSink{client: client, channel: channel}
}

// Ping checks the connection.
func (r *RedisSink) Ping(ctx context.Context) error {
	return errors.Wrap(r.client.Ping(ctx).Err(), "redis ping")
}

// Publish implements Sink.
func (r *RedisSink) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	if err := r.client.Publish(ctx, r.channel, body).Err(); err != nil {
		return errors.Wrapf(err, "publish to %s", r.channel)
	}

	return nil
}

// Close closes the client.
func (r *RedisSink) Close() error {
	return r.client.Close()
}
