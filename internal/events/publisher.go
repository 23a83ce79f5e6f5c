// Package events publishes domain events to RabbitMQ so sibling TechShop
// services (notifications, analytics) can react to account activity.
// Publishing is best effort: a broker failure is logged by the caller and
// never fails the request that produced the event.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/azangue-cmd/techshop-infrastructure/internal/models"
)

// UserRegisteredKey is the routing key for registration events.
const UserRegisteredKey = "user.registered"

// UserRegistered is the payload published after a successful registration.
type UserRegistered struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher publishes events to a single exchange over an AMQP channel.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// Connect dials the broker, opens a channel and declares the exchange.
func Connect(url, exchange string) (*Publisher, error) {
	const op = "events.Connect"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// PublishUserRegistered emits a user.registered event for the given user.
func (p *Publisher) PublishUserRegistered(user *models.User) error {
	const op = "events.PublishUserRegistered"

	event := UserRegistered{
		EventID:    uuid.New().String(),
		Type:       UserRegisteredKey,
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		OccurredAt: time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		UserRegisteredKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close shuts the channel and the underlying connection down.
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
