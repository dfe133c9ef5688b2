package events

import (
	"context"
	"encoding/json"

	"oqassets-backend/internal/domain/event"

	"github.com/redis/go-redis/v9"
)

// RedisSink publishes events as JSON on redis pub/sub channels. The websocket
// gateway and the notification service subscribe on their side; this service
// never talks to clients directly.
type RedisSink struct {
	rdb         *redis.Client
	valuationCh string
	riskCh      string
}

func NewRedisSink(rdb *redis.Client, valuationChannel, riskChannel string) *RedisSink {
	return &RedisSink{rdb: rdb, valuationCh: valuationChannel, riskCh: riskChannel}
}

func (s *RedisSink) PublishValuation(ctx context.Context, ev event.ValuationEvent) error {
	return s.publish(ctx, s.valuationCh, ev)
}

func (s *RedisSink) PublishRisk(ctx context.Context, ev event.RiskEvent) error {
	return s.publish(ctx, s.riskCh, ev)
}

func (s *RedisSink) publish(ctx context.Context, channel string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, channel, b).Err()
}
