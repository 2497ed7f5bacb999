package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"genai-chat/internal/cache"
	rabbitmqClient "genai-chat/internal/platform/rabbitmq"
	"genai-chat/internal/repository"
)

// SessionCleanupWorker consumes cleanup events for soft-deleted sessions and
// removes their chat rows and cached turns. Keeping the cascade off the
// request path means a session delete returns as soon as the flag flips.
type SessionCleanupWorker struct {
	conn       *amqp.Connection
	chats      *repository.ChatRepository
	turnsCache *cache.TurnsCache
	queueName  string
	logger     *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSessionCleanupWorker(
	conn *amqp.Connection,
	chats *repository.ChatRepository,
	turnsCache *cache.TurnsCache,
	queueName string,
	logger *zap.Logger,
) *SessionCleanupWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionCleanupWorker{
		conn:       conn,
		chats:      chats,
		turnsCache: turnsCache,
		queueName:  queueName,
		logger:     logger,
	}
}

func (w *SessionCleanupWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume worker queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()
		w.run(workerCtx, deliveries)
	}()
	return nil
}

func (w *SessionCleanupWorker) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			w.handle(ctx, delivery)
		}
	}
}

func (w *SessionCleanupWorker) handle(ctx context.Context, delivery amqp.Delivery) {
	var event rabbitmqClient.SessionCleanupEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		w.logger.Error("decode cleanup event failed", zap.Error(err))
		_ = delivery.Nack(false, false)
		return
	}

	removed, err := w.chats.DeleteBySessionID(event.SessionID)
	if err != nil {
		w.logger.Error("cascade delete chats failed",
			zap.Uint("session_id", event.SessionID),
			zap.Error(err),
		)
		// Requeue; the broker redelivers until the database is back.
		_ = delivery.Nack(false, true)
		return
	}

	if w.turnsCache != nil {
		if err := w.turnsCache.Delete(ctx, event.SessionID); err != nil {
			w.logger.Debug("delete cached turns failed", zap.Error(err))
		}
	}

	w.logger.Info("session cleanup done",
		zap.Uint("session_id", event.SessionID),
		zap.Int64("chats_removed", removed),
	)
	_ = delivery.Ack(false)
}

func (w *SessionCleanupWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
