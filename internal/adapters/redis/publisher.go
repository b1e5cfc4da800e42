package redisad

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

// DefaultChannel receives one message per created review.
const DefaultChannel = "reviews:created"

// Publisher announces created reviews on a Redis pub/sub channel.
type Publisher struct {
	c       *redis.Client
	channel string
}

var _ domain.ReviewPublisher = (*Publisher)(nil)

func New(addr, pass string, db int, channel string) *Publisher {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), channel)
}

func NewWithClient(c *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{c: c, channel: channel}
}

func (p *Publisher) Ping(ctx context.Context) error { return p.c.Ping(ctx).Err() }

func (p *Publisher) PublishCreated(ctx context.Context, r domain.ScoredReview) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal review %s: %w", r.ID, err)
	}
	err = p.c.Publish(ctx, p.channel, b).Err()
	observability.ObservePublish(p.channel, err)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.c.Close() }
