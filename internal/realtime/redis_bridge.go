package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/pkg/config"
)

// RedisBridge relays events through a redis channel so that every server
// instance reaches the displays connected to it. Publish writes to the
// channel only; the subscription loop feeds received events into the local
// hub, including this instance's own.
type RedisBridge struct {
	hub     *Hub
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisBridge connects to redis and returns the bridge.
func NewRedisBridge(cfg config.RedisConfig, channel string, hub *Hub, logger *zap.Logger) (*RedisBridge, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisBridge{hub: hub, client: client, channel: channel, logger: logger}, nil
}

// Publish sends the event to the shared channel. Failures are logged and
// swallowed: the broadcast must never fail the mutation that triggered it.
func (b *RedisBridge) Publish(evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		b.logger.Warn("marshal realtime event", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Warn("publish realtime event", zap.Error(err))
	}
}

// Run subscribes to the channel and forwards events into the hub until the
// context is cancelled.
func (b *RedisBridge) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close() //nolint:errcheck

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				b.logger.Warn("decode realtime event", zap.Error(err))
				continue
			}
			b.hub.Publish(evt)
		}
	}
}

// Close releases the redis connection.
func (b *RedisBridge) Close() error {
	return b.client.Close()
}
