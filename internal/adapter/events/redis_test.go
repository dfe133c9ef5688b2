package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"oqassets-backend/internal/domain/event"
)

func newSinkWithRedis(t *testing.T) (*RedisSink, *redis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisSink(rdb, "valuation.events", "risk.events"), rdb
}

func TestRedisSink_PublishValuation(t *testing.T) {
	sink, rdb := newSinkWithRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sub := rdb.Subscribe(ctx, "valuation.events")
	t.Cleanup(func() { _ = sub.Close() })
	if _, err := sub.Receive(ctx); err != nil { // wait for subscription ack
		t.Fatalf("subscribe: %v", err)
	}

	want := event.ValuationEvent{
		JobID:      "11111111-1111-1111-1111-111111111111",
		DocumentID: "d0c0000000000000000000000000000d",
		Status:     "processing",
		Progress:   60,
		Message:    "consulting oracle sources",
	}
	if err := sink.PublishValuation(ctx, want); err != nil {
		t.Fatalf("PublishValuation: %v", err)
	}

	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}
	var got event.ValuationEvent
	if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if got.JobID != want.JobID || got.Progress != 60 {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestRedisSink_PublishRisk(t *testing.T) {
	sink, rdb := newSinkWithRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sub := rdb.Subscribe(ctx, "risk.events")
	t.Cleanup(func() { _ = sub.Close() })
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	want := event.RiskEvent{
		LoanID:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		UserAddress: "0xabcd000000000000000000000000000000000001",
		Severity:    event.SeverityCritical,
		Message:     "loan liquidated",
		CurrentLTV:  decimal.RequireFromString("92.5"),
	}
	if err := sink.PublishRisk(ctx, want); err != nil {
		t.Fatalf("PublishRisk: %v", err)
	}

	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}
	var got event.RiskEvent
	if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if got.Severity != event.SeverityCritical || !got.CurrentLTV.Equal(want.CurrentLTV) {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestLogSink_NeverFails(t *testing.T) {
	var sink LogSink
	if err := sink.PublishValuation(context.Background(), event.ValuationEvent{JobID: "j"}); err != nil {
		t.Fatalf("PublishValuation: %v", err)
	}
	if err := sink.PublishRisk(context.Background(), event.RiskEvent{LoanID: "l"}); err != nil {
		t.Fatalf("PublishRisk: %v", err)
	}
}
