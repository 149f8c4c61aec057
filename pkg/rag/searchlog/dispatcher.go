package searchlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-guide-assistant/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	// Topic carries entries waiting to be embedded and stored.
	Topic = "search_log.requested"

	recordTimeout = 30 * time.Second
)

// Dispatcher hands entries to a background consumer over an in-process
// watermill channel so that retrieval never waits on the log index.
type Dispatcher struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger *Logger
	log    logger.ILogger
}

func NewDispatcher(pubSub *gochannel.GoChannel, recorder *Logger, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		pubSub: pubSub,
		topic:  Topic,
		logger: recorder,
		log:    log,
	}
}

// Publish queues an entry. It only fails when the entry cannot be encoded or
// the channel is closed.
func (d *Dispatcher) Publish(ctx context.Context, entry Entry) error {
	if !d.logger.Enabled() {
		return ErrDisabled
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal search log entry: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := d.pubSub.Publish(d.topic, msg); err != nil {
		return fmt.Errorf("publish search log entry: %w", err)
	}
	return nil
}

// Consume subscribes to the topic and stores entries until ctx is done.
func (d *Dispatcher) Consume(ctx context.Context) error {
	messages, err := d.pubSub.Subscribe(ctx, d.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			d.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (d *Dispatcher) processMessage(ctx context.Context, msg *message.Message) {
	// Every message is acked: a failed log is dropped, never retried
	defer msg.Ack()

	var entry Entry
	if err := json.Unmarshal(msg.Payload, &entry); err != nil {
		d.log.Error("SearchLog", "Failed to unmarshal search log entry", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if _, err := d.logger.Record(recordCtx, entry); err != nil {
		d.log.Warn("SearchLog", "Search log skipped", map[string]interface{}{
			"query": entry.Query,
			"error": err.Error(),
		})
	}
}
