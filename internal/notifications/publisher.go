package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelmondragon/bakery-backend/pkg/db/models"
	"github.com/angelmondragon/bakery-backend/pkg/logger"
	"github.com/angelmondragon/bakery-backend/pkg/redis"
)

// EventOrderCreated is the event name sent when an order saga commits.
const EventOrderCreated = "orderCreated"

// Message is the envelope written to a branch channel.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Publisher fans committed orders out to the branch's real-time channel.
type Publisher struct {
	redis  redis.Publisher
	prefix string
	logg   *logger.Logger
}

// NewPublisher builds a Publisher writing to "<prefix>:<branch_id>".
func NewPublisher(client redis.Publisher, prefix string, logg *logger.Logger) (*Publisher, error) {
	if client == nil {
		return nil, errors.New("redis publisher required")
	}
	if prefix == "" {
		return nil, errors.New("channel prefix required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Publisher{redis: client, prefix: prefix, logg: logg}, nil
}

// OrderCreated publishes the committed order to its branch channel.
func (p *Publisher) OrderCreated(ctx context.Context, order *models.Order) error {
	if order == nil {
		return errors.New("order required")
	}
	payload, err := json.Marshal(Message{Event: EventOrderCreated, Data: order})
	if err != nil {
		return fmt.Errorf("encode %s: %w", EventOrderCreated, err)
	}

	channel := p.ChannelFor(order.BranchID.String())
	receivers, err := p.redis.Publish(ctx, channel, payload)
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", EventOrderCreated, channel, err)
	}
	p.logg.Debug(p.logg.WithFields(ctx, map[string]any{
		"channel":   channel,
		"receivers": receivers,
	}), "notification.published")
	return nil
}

// ChannelFor returns the channel name for a branch.
func (p *Publisher) ChannelFor(branchID string) string {
	return redis.Channel(p.prefix, branchID)
}
