// Package amqp broadcasts ledger events over a RabbitMQ fanout exchange so that
// every running instance can drop its cached analytics for the affected business.
package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_app/internal/core/ports/services"
	"github.com/rabbitmq/amqp091-go"
)

// Client publishes and consumes ledger events on one exchange.
type Client struct {
	url          string
	exchangeName string
	logger       *slog.Logger

	mu      sync.Mutex // guards conn and channel
	conn    *amqp091.Connection
	channel *amqp091.Channel

	state        int32
	failureCount int64
	breakerMu    sync.Mutex
	lastFailure  time.Time
}

// Ensure Client implements the LedgerEventPublisher interface
var _ portssvc.LedgerEventPublisher = (*Client)(nil)

// NewClient dials the broker and declares the exchange.
func NewClient(url, exchangeName string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{url: url, exchangeName: exchangeName, logger: logger}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.connectLocked(); err != nil {
		return nil, err
	}
	return c, nil
}

// connectLocked (re)opens the connection and publishing channel. c.mu must be held.
func (c *Client) connectLocked() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := declareExchange(channel, c.exchangeName); err != nil {
		channel.Close()
		conn.Close()
		return err
	}
	c.conn, c.channel = conn, channel
	return nil
}

func declareExchange(channel *amqp091.Channel, name string) error {
	err := channel.ExchangeDeclare(
		name,     // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	return nil
}

func (c *Client) publishChannel() (*amqp091.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || c.conn.IsClosed() || c.channel == nil || c.channel.IsClosed() {
		if c.conn != nil && !c.conn.IsClosed() {
			c.conn.Close()
		}
		if err := c.connectLocked(); err != nil {
			return nil, err
		}
	}
	return c.channel, nil
}

// PublishLedgerEvent broadcasts event to every bound queue.
func (c *Client) PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error {
	if c.isCircuitOpen() {
		return errors.New("circuit breaker is open, skipping publish")
	}

	body, err := NewLedgerEventMessage(event).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	channel, err := c.publishChannel()
	if err != nil {
		c.recordFailure()
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		"",             // routing key, ignored by fanout
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Transient,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		c.recordFailure()
		return fmt.Errorf("publish message: %w", err)
	}
	c.recordSuccess()

	c.logger.DebugContext(ctx, "Published ledger event",
		slog.String("business_id", event.BusinessID),
		slog.String("kind", string(event.Kind)),
		slog.String("exchange", c.exchangeName))
	return nil
}

// ConsumeLedgerEvents binds a private, auto-deleted queue to the exchange and
// hands every event to handler until ctx is done. Broker disconnects are retried
// with exponential backoff.
func (c *Client) ConsumeLedgerEvents(ctx context.Context, handler func(domain.LedgerEvent) error) error {
	for attempt := 0; ; attempt++ {
		consumed, err := c.consumeOnce(ctx, handler)
		if ctx.Err() != nil {
			c.logger.InfoContext(ctx, "Stopping ledger event consumption", slog.Any("reason", ctx.Err()))
			return ctx.Err()
		}
		if err != nil && !isConnectionError(err) {
			return err
		}
		if consumed {
			attempt = 0
		}

		wait := exponentialBackoff(attempt)
		c.logger.WarnContext(ctx, "Ledger event consumer disconnected, retrying",
			slog.Any("error", err),
			slog.Duration("backoff", wait))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// consumeOnce runs one subscription. consumed reports whether any delivery was seen.
func (c *Client) consumeOnce(ctx context.Context, handler func(domain.LedgerEvent) error) (consumed bool, err error) {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return false, fmt.Errorf("dial AMQP: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return false, fmt.Errorf("open channel: %w", err)
	}
	defer channel.Close()

	if err := declareExchange(channel, c.exchangeName); err != nil {
		return false, err
	}
	queue, err := channel.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return false, fmt.Errorf("declare queue: %w", err)
	}
	if err := channel.QueueBind(queue.Name, "", c.exchangeName, false, nil); err != nil {
		return false, fmt.Errorf("bind queue: %w", err)
	}

	msgs, err := channel.Consume(
		queue.Name, // queue
		"",         // consumer
		false,      // auto-ack
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return false, fmt.Errorf("start consuming: %w", err)
	}

	c.logger.InfoContext(ctx, "Started consuming ledger events",
		slog.String("exchange", c.exchangeName),
		slog.String("queue", queue.Name))

	for {
		select {
		case <-ctx.Done():
			return consumed, ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return consumed, errors.New("message channel closed: connection lost")
			}
			consumed = true

			msg, err := LedgerEventMessageFromJSON(delivery.Body)
			if err != nil {
				c.logger.ErrorContext(ctx, "Failed to unmarshal ledger event", slog.String("error", err.Error()))
				_ = delivery.Nack(false, false) // reject and don't requeue
				continue
			}
			if err := handler(msg.Event()); err != nil {
				c.logger.ErrorContext(ctx, "Failed to handle ledger event",
					slog.String("error", err.Error()),
					slog.String("business_id", msg.BusinessID))
				_ = delivery.Nack(false, false)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

// Close closes the publishing channel and connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// InvalidateCache returns a handler that drops cached analytics of the event's business.
func InvalidateCache(cache portssvc.MonthlyAnalyticsCache) func(domain.LedgerEvent) error {
	return func(event domain.LedgerEvent) error {
		cache.Invalidate(event.BusinessID)
		return nil
	}
}
