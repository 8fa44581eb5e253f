// Package events ships order-placed messages to the warehouse queue.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-faster/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"urbankicks/internal/domain"
)

// OrderItem and OrderMessage are the queue payload.
type OrderItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type OrderMessage struct {
	OrderID string      `json:"orderId"`
	City    string      `json:"city"`
	Items   []OrderItem `json:"items"`
}

func MessageFor(o domain.Order) OrderMessage {
	msg := OrderMessage{OrderID: o.ID, City: o.Customer.City, Items: make([]OrderItem, 0, len(o.Lines))}
	for _, l := range o.Lines {
		msg.Items = append(msg.Items, OrderItem{ProductID: l.ProductID, Quantity: l.Qty})
	}
	return msg
}

// Publisher announces placed orders. Publishing is best effort: a failure
// never undoes the order.
type Publisher interface {
	PublishOrder(ctx context.Context, o domain.Order) error
	Close() error
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) PublishOrder(context.Context, domain.Order) error { return nil }
func (Nop) Close() error { return nil }

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type AMQPPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    channel
	queue string
}

// DialAMQP connects and declares the durable queue.
func DialAMQP(uri, queue string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, errors.Wrap(err, "amqp dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "amqp channel")
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "declare queue %q", queue)
	}
	return &AMQPPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *AMQPPublisher) PublishOrder(ctx context.Context, o domain.Order) error {
	body, err := json.Marshal(MessageFor(o))
	if err != nil {
		return errors.Wrap(err, "encode order message")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    o.ID,
		Timestamp:    o.CreatedAt,
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
