package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

// CatalogQueue carries product and review change events.
const CatalogQueue = "catalog_events"

// Event is the JSON envelope published for every catalog change.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
	// amqp.Channel is not safe for concurrent publishes.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the event
// queue.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = CatalogQueue
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declare(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.Info("RabbitMQ client connected", "queue", cfg.Queue)
	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		logger:  logger,
	}, nil
}

func declare(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", queue, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// EncodeEvent builds the message body for an event of eventType.
func EncodeEvent(eventType string, payload any, at time.Time) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return json.Marshal(Event{Type: eventType, OccurredAt: at.UTC(), Payload: raw})
}

// PublishEvent publishes a catalog event to the event queue.
func (c *Client) PublishEvent(eventType string, payload any) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	now := time.Now()
	body, err := EncodeEvent(eventType, payload, now)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",      // exchange: default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventType,
			MessageId:    uuid.NewString(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    now,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	c.logger.Debug("published catalog event", "type", eventType)
	return nil
}

// ConsumeEvents starts a goroutine that decodes messages from the event
// queue and passes them to handler. A handler error requeues the message
// once; a message that cannot be decoded is dropped.
func (c *Client) ConsumeEvents(handler func(Event) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			c.handle(msg, handler)
		}
	}()
	return nil
}

func (c *Client) handle(msg amqp.Delivery, handler func(Event) error) {
	var event Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		c.logger.Warn("dropping undecodable event", "message_id", msg.MessageId, "err", err)
		if err := msg.Nack(false, false); err != nil {
			c.logger.Error("failed to nack message", "message_id", msg.MessageId, "err", err)
		}
		return
	}

	if err := handler(event); err != nil {
		c.logger.Warn("event handler failed", "type", event.Type, "message_id", msg.MessageId, "err", err)
		if err := msg.Nack(false, !msg.Redelivered); err != nil {
			c.logger.Error("failed to nack message", "message_id", msg.MessageId, "err", err)
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		c.logger.Error("failed to ack message", "message_id", msg.MessageId, "err", err)
	}
}

// LogEvents returns a handler that writes each event to logger.
func LogEvents(logger *slog.Logger) func(Event) error {
	return func(e Event) error {
		logger.Info("catalog event", "type", e.Type, "occurred_at", e.OccurredAt, "payload", string(e.Payload))
		return nil
	}
}
