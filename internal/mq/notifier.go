package mq

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Notifier publishes a ChangeMessage for every committed mutation. Publishing
// is best effort: a failure is logged and never fails the request.
type Notifier struct {
	mu     sync.Mutex
	ch     Publisher
	queue  string
	logger *zap.Logger
	now    func() time.Time
}

func NewNotifier(conn *amqp.Connection, queue string, logger *zap.Logger) (*Notifier, error) {
	if err := InitQueues(conn, queue); err != nil {
		return nil, err
	}
	ch, err := NewChannel(conn)
	if err != nil {
		return nil, err
	}
	return newNotifier(ch, queue, logger), nil
}

func newNotifier(ch Publisher, queue string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		ch:     ch,
		queue:  queue,
		logger: logger,
		now:    time.Now,
	}
}

func (n *Notifier) NotifyChange(ctx context.Context, entity, action string, id uint) {
	msg := ChangeMessage{
		Entity: entity,
		Action: action,
		ID:     id,
		At:     n.now().UTC(),
	}

	// an amqp channel is not safe for concurrent publishing
	n.mu.Lock()
	err := SendImmediateMessage(ctx, n.ch, n.queue, msg)
	n.mu.Unlock()

	if err != nil {
		n.logger.Warn("failed to publish change",
			zap.String("queue", n.queue),
			zap.String("entity", entity),
			zap.String("action", action),
			zap.Uint("id", id),
			zap.Error(err))
	}
}

// Close closes the underlying channel when it is an amqp channel.
func (n *Notifier) Close() error {
	if ch, ok := n.ch.(*amqp.Channel); ok {
		return ch.Close()
	}
	return nil
}
