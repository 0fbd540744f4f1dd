package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/shashank9666/qwipo-backend/internal/models"
)

// ErrPermanent marks a failure that redelivery cannot fix. Messages failing
// with it are dropped instead of requeued.
var ErrPermanent = errors.New("permanent failure")

// EventHandler processes one customer event
type EventHandler func(ctx context.Context, event *models.CustomerEvent) error

// Consumer consumes customer events from a RabbitMQ queue
type Consumer struct {
	conn      *Connection
	queueName string
	handler   EventHandler
	stopChan  chan struct{}
	doneChan  chan struct{}
}

// NewConsumer declares the queue and returns a consumer for it
func NewConsumer(conn *Connection, queueName string, handler EventHandler) (*Consumer, error) {
	if conn == nil {
		return nil, errors.New("connection cannot be nil")
	}
	if queueName == "" {
		return nil, errors.New("queue name cannot be empty")
	}
	if handler == nil {
		return nil, errors.New("handler cannot be nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	if err := declareQueue(ch, queueName); err != nil {
		return nil, err
	}

	return &Consumer{
		conn:      conn,
		queueName: queueName,
		handler:   handler,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}, nil
}

// Start starts consuming events in the background
func (c *Consumer) Start() error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}

	// one unacknowledged event at a time
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		c.queueName,
		"",    // consumer tag (auto-generated)
		false, // auto-ack (manual acknowledgement)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	go func() {
		defer close(c.doneChan)

		for {
			select {
			case <-c.stopChan:
				log.Info().Msg("Consumer stopping")
				return
			case d, ok := <-msgs:
				if !ok {
					log.Warn().Msg("Delivery channel closed")
					return
				}
				c.handleDelivery(d)
			}
		}
	}()

	log.Info().Str("queue", c.queueName).Msg("Consumer started")
	return nil
}

// Stop stops consuming and waits for the in-flight event to settle
func (c *Consumer) Stop() error {
	close(c.stopChan)
	<-c.doneChan

	log.Info().Msg("Consumer stopped")
	return nil
}

// handleDelivery processes a delivery and acknowledges it
func (c *Consumer) handleDelivery(d amqp.Delivery) {
	err := c.processMessage(d)

	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error().Err(ackErr).Msg("Failed to ack event")
		}
	case errors.Is(err, ErrPermanent):
		log.Error().Err(err).Str("message_id", d.MessageId).Msg("Dropping event")
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error().Err(nackErr).Msg("Failed to nack event")
		}
	default:
		log.Warn().Err(err).Str("message_id", d.MessageId).Msg("Event processing failed, requeueing")
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error().Err(nackErr).Msg("Failed to nack event")
		}
	}
}

// processMessage decodes a delivery and passes it to the handler
func (c *Consumer) processMessage(d amqp.Delivery) error {
	var event models.CustomerEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		return fmt.Errorf("%w: failed to unmarshal event: %v", ErrPermanent, err)
	}

	if err := c.handler(context.Background(), &event); err != nil {
		return fmt.Errorf("handler failed: %w", err)
	}

	return nil
}
