package events

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "events").Logger()

// AMQPPublisher implements Publisher on top of a RabbitMQ connection.
//
// The connection is opened lazily on the first publish and reused while
// healthy. The durable direct exchange, durable queue and binding are
// declared on every (re)connect. The connection and channel are process-wide
// shared resources, so all access is serialized behind a mutex.
type AMQPPublisher struct {
	url        string
	exchange   string
	queue      string
	routingKey string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher creates a publisher for the given broker URL and
// topology. No connection is made until the first Publish.
func NewAMQPPublisher(url, exchange, queue, routingKey string) *AMQPPublisher {
	return &AMQPPublisher{
		url:        url,
		exchange:   exchange,
		queue:      queue,
		routingKey: routingKey,
	}
}

// Publish sends one persistent message carrying the JSON-serialized payload,
// with the event type as the message type property. On a publish error the
// connection is rebuilt and the send retried once; after that the failure is
// logged and reported as false. Publish never panics and never returns an
// error, so a broker outage cannot leak into the data-mutation path.
func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload any) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error().Err(err).Str("event", eventType).Msg("failed to serialize event payload")
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.send(ctx, eventType, body); err != nil {
		p.reset()
		if err = p.send(ctx, eventType, body); err != nil {
			logger.Error().Err(err).Str("event", eventType).Msg("failed to publish event")
			return false
		}
	}

	logger.Info().Str("event", eventType).Msg("published event")
	return true
}

// Close shuts down the broker connection if one was ever opened.
func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}

// send performs a single publish attempt, connecting first if needed.
// Callers must hold p.mu.
func (p *AMQPPublisher) send(ctx context.Context, eventType string, body []byte) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Type:         eventType,
		MessageId:    uuid.NewString(),
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// channel returns a healthy channel, dialing and re-declaring the topology
// when the previous connection is gone. Callers must hold p.mu.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(p.exchange, "direct", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.QueueBind(p.queue, p.routingKey, p.exchange, false, nil); err != nil {
		conn.Close()
		return nil, err
	}

	p.conn = conn
	p.ch = ch
	logger.Info().Str("exchange", p.exchange).Str("queue", p.queue).Msg("connected to message broker")
	return p.ch, nil
}

// reset drops the current connection and channel. Callers must hold p.mu.
func (p *AMQPPublisher) reset() {
	if p.conn != nil && !p.conn.IsClosed() {
		p.conn.Close()
	}
	p.conn = nil
	p.ch = nil
}
