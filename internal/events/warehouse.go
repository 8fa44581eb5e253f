package events

import (
	"encoding/json"
	"maps"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	applog "urbankicks/internal/log"
)

// Tally counts orders and units per product as the warehouse sees them.
type Tally struct {
	mu        sync.Mutex
	orders    int64
	byProduct map[int]int64
}

func NewTally() *Tally {
	return &Tally{byProduct: make(map[int]int64)}
}

func (t *Tally) Handle(msg OrderMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.orders++
	for _, it := range msg.Items {
		t.byProduct[it.ProductID] += int64(it.Quantity)
	}
}

// HandleBody decodes and records one delivery body. Undecodable bodies are
// reported so the caller can ack and drop them.
func (t *Tally) HandleBody(body []byte) error {
	var msg OrderMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return err
	}
	t.Handle(msg)
	return nil
}

func (t *Tally) Snapshot() (orders int64, units map[int]int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.orders, maps.Clone(t.byProduct)
}

// Work consumes the queue on its own channel until the delivery stream closes.
func Work(conn *amqp.Connection, queue string, id int, tally *Tally, wg *sync.WaitGroup) {
	defer wg.Done()

	ch, err := conn.Channel()
	if err != nil {
		applog.Error(nil, "warehouse.channel.fail", err, map[string]any{"worker": id})
		return
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		applog.Error(nil, "warehouse.declare.fail", err, map[string]any{"worker": id, "queue": queue})
		return
	}
	if err := ch.Qos(10, 0, false); err != nil {
		applog.Error(nil, "warehouse.qos.fail", err, map[string]any{"worker": id})
		return
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		applog.Error(nil, "warehouse.consume.fail", err, map[string]any{"worker": id, "queue": queue})
		return
	}

	applog.Info(nil, "warehouse.consume.start", map[string]any{"worker": id, "queue": queue})
	for d := range msgs {
		tally.deliver(id, d)
	}
}

// deliver records one delivery and acks it. Bad bodies are acked too so they
// do not loop back onto the queue.
func (t *Tally) deliver(worker int, d amqp.Delivery) {
	if err := t.HandleBody(d.Body); err != nil {
		applog.Warn(nil, "warehouse.message.drop", err, map[string]any{"worker": worker, "message_id": d.MessageId})
	}
	_ = d.Ack(false)
}
