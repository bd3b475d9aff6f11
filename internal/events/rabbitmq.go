package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"auditionhub_backend/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher keeps one connection and channel and redials lazily after a failure.
type RabbitPublisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbitPublisher(url, queue string) *RabbitPublisher {
	return &RabbitPublisher{url: url, queue: queue}
}

func (p *RabbitPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.closeLocked()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		logger.EventLog("publish", event.Type, err)
		return err
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	})
	if err != nil {
		p.closeLocked()
	}
	logger.EventLog("publish", event.Type, err)
	return err
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *RabbitPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Consumer reads events from the queue and redials with exponential backoff.
type Consumer struct {
	url        string
	queue      string
	handler    Handler
	maxBackoff time.Duration
}

func NewConsumer(url, queue string, handler Handler) *Consumer {
	return &Consumer{url: url, queue: queue, handler: handler, maxBackoff: 30 * time.Second}
}

const minBackoff = time.Second

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	var backoff time.Duration
	for {
		connected, err := c.consume(ctx)
		if ctx.Err() != nil {
			logger.Info("Event consumer stopped", "queue", c.queue)
			return
		}
		backoff = retryDelay(backoff, connected, c.maxBackoff)
		logger.Warn("Event consumer disconnected", "queue", c.queue, "error", fmt.Sprint(err), "retry_in", backoff.String())

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

// retryDelay doubles prev up to limit. A session that got as far as consuming
// starts over from minBackoff.
func retryDelay(prev time.Duration, connected bool, limit time.Duration) time.Duration {
	if connected || prev < minBackoff {
		return minBackoff
	}
	next := prev * 2
	if next > limit {
		next = limit
	}
	return next
}

// consume reports whether it reached the point of receiving deliveries.
func (c *Consumer) consume(ctx context.Context) (bool, error) {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return false, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return false, fmt.Errorf("channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(20, 0, false); err != nil {
		return false, fmt.Errorf("qos: %w", err)
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return false, fmt.Errorf("queue declare: %w", err)
	}
	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return false, fmt.Errorf("consume: %w", err)
	}
	logger.Info("Event consumer connected", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return true, nil
		case d, ok := <-deliveries:
			if !ok {
				return true, errors.New("deliveries channel closed")
			}
			c.dispatch(ctx, d)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery) {
	var event Event
	if err := json.Unmarshal(d.Body, &event); err != nil {
		logger.EventLog("consume", "unknown", err)
		_ = d.Nack(false, false)
		return
	}

	err := c.handler(ctx, event)
	logger.EventLog("consume", event.Type, err)
	if err != nil {
		// no requeue: a failing handler would otherwise spin on the same message
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
