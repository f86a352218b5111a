package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/bakery-backend/pkg/config"
)

func TestPublishForwardsPayload(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	mock.subscribers["bakery:branch:b1"] = 2
	client := &Client{store: mock}

	receivers, err := client.Publish(ctx, "bakery:branch:b1", []byte(`{"event":"orderCreated"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receivers != 2 {
		t.Fatalf("expected 2 receivers got %d", receivers)
	}
	if len(mock.published) != 1 {
		t.Fatalf("expected one publish, got %d", len(mock.published))
	}
	if got := string(mock.published[0].payload.([]byte)); got != `{"event":"orderCreated"}` {
		t.Fatalf("unexpected payload %s", got)
	}
}

func TestPublishRejectsEmptyChannel(t *testing.T) {
	client := &Client{store: newMockCmdable()}
	if _, err := client.Publish(context.Background(), "  ", []byte("x")); err == nil {
		t.Fatalf("expected error for empty channel")
	}
}

func TestPublishSurfacesRedisError(t *testing.T) {
	mock := newMockCmdable()
	mock.publishErr = errors.New("connection reset")
	client := &Client{store: mock}

	if _, err := client.Publish(context.Background(), "c", []byte("x")); !errors.Is(err, mock.publishErr) {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestUninitializedClient(t *testing.T) {
	var client *Client
	if err := client.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error on nil client")
	}
	if _, err := client.Publish(context.Background(), "c", nil); err == nil {
		t.Fatalf("expected publish error on nil client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on nil client should be a no-op: %v", err)
	}
}

func TestChannel(t *testing.T) {
	if got := Channel("bakery:branch", "b1"); got != "bakery:branch:b1" {
		t.Fatalf("unexpected channel %s", got)
	}
	if got := Channel("bakery:branch:", "", " b2 "); got != "bakery:branch:b2" {
		t.Fatalf("channel should skip empty parts, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatalf("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://:secret@cache.internal:6380/3",
		PoolSize:    7,
		DialTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache.internal:6380" || opts.DB != 3 || opts.Password != "secret" {
		t.Fatalf("url not applied: %+v", opts)
	}
	if opts.PoolSize != 7 || opts.DialTimeout != 2*time.Second {
		t.Fatalf("pool settings not applied: %+v", opts)
	}

	opts, err = optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 1 {
		t.Fatalf("address not applied: %+v", opts)
	}
}

type publishCall struct {
	channel string
	payload any
}

type mockCmdable struct {
	subscribers map[string]int64
	published   []publishCall
	publishErr  error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{subscribers: make(map[string]int64)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	if m.publishErr != nil {
		return redis.NewIntResult(0, m.publishErr)
	}
	m.published = append(m.published, publishCall{channel: channel, payload: message})
	return redis.NewIntResult(m.subscribers[channel], nil)
}
