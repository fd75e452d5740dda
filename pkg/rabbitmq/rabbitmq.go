// Package rabbitmq wraps the AMQP connection used for order lifecycle
// events and outbound email jobs. Both queues are durable; publishing is
// best-effort from the caller's point of view.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	amqp "github.com/streadway/amqp"
)

const (
	// OrderEventsQueue receives order lifecycle events.
	OrderEventsQueue = "order_events"
	// EmailJobsQueue receives outbound email jobs (password resets).
	EmailJobsQueue = "email_jobs"
)

// OrderCreatedEvent is published after an order has been persisted.
type OrderCreatedEvent struct {
	EventID string          `json:"event_id"`
	OrderID uint            `json:"order_id"`
	UserID  uint            `json:"user_id"`
	Total   decimal.Decimal `json:"total"`
	At      time.Time       `json:"at"`
}

// PasswordResetJob asks the email worker to deliver a reset link.
type PasswordResetJob struct {
	JobID     string `json:"job_id"`
	Recipient string `json:"recipient"`
	ResetLink string `json:"reset_link"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the two
// queues the store uses.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	for _, queue := range []string{OrderEventsQueue, EmailJobsQueue} {
		_, err = ch.QueueDeclare(
			queue,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare %s: %w", queue, err)
		}
	}

	log.Printf("RabbitMQ client connected, queues %s and %s declared", OrderEventsQueue, EmailJobsQueue)

	return &Client{conn: conn, channel: ch}, nil
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
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// publish sends a persistent JSON message to a queue via the default
// exchange.
func (c *Client) publish(queue string, body []byte) error {
	return c.channel.Publish(
		"",    // default exchange routes by queue name
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// PublishOrderCreated publishes an order.created event.
func (c *Client) PublishOrderCreated(orderID, userID uint, total decimal.Decimal) error {
	event := OrderCreatedEvent{
		EventID: uuid.New().String(),
		OrderID: orderID,
		UserID:  userID,
		Total:   total,
		At:      time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order created event: %w", err)
	}
	return c.publish(OrderEventsQueue, body)
}

// PublishPasswordReset enqueues a password-reset email job.
func (c *Client) PublishPasswordReset(recipient, resetLink string) error {
	job := PasswordResetJob{
		JobID:     uuid.New().String(),
		Recipient: recipient,
		ResetLink: resetLink,
	}
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal password reset job: %w", err)
	}
	return c.publish(EmailJobsQueue, body)
}

// ConsumeEmailJobs delivers email jobs to handler. A nil handler error
// acks the message; any other error nacks it back onto the queue.
func (c *Client) ConsumeEmailJobs(handler func(job PasswordResetJob) error) error {
	msgs, err := c.channel.Consume(
		EmailJobsQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", EmailJobsQueue, err)
	}

	for msg := range msgs {
		var job PasswordResetJob
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			log.Printf("Discarding malformed email job: %v", err)
			msg.Nack(false, false)
			continue
		}
		if err := handler(job); err != nil {
			log.Printf("Email job %s failed, requeueing: %v", job.JobID, err)
			msg.Nack(false, true)
			continue
		}
		msg.Ack(false)
	}
	return nil
}
