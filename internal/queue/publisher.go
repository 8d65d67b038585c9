package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/hetulpatel/valorfinder/internal/models"
)

// PickPublisher writes derived value picks to a Kafka topic. A nil publisher
// or nil writer is a no-op.
type PickPublisher struct {
	writer *kafka.Writer
}

// NewPickPublisher wraps a writer. writer may be nil when publishing is disabled.
func NewPickPublisher(writer *kafka.Writer) *PickPublisher {
	return &PickPublisher{writer: writer}
}

// PublishPicks sends one message per match in the derived list.
func (p *PickPublisher) PublishPicks(ctx context.Context, date string, picks []models.Match) error {
	if p == nil || p.writer == nil || len(picks) == 0 {
		return nil
	}

	captured := time.Now().UTC()
	msgs := make([]kafka.Message, 0, len(picks))

	for _, m := range picks {
		if len(m.Markets) == 0 {
			continue
		}
		pick := models.Pick{Date: date, Match: m, CapturedAt: captured}
		payload, err := json.Marshal(pick)
		if err != nil {
			return fmt.Errorf("marshal pick %s: %w", m.ID, err)
		}
		key := fmt.Sprintf("%s-%s", date, m.ID)
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: payload})
	}

	if len(msgs) == 0 {
		return nil
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

// Close flushes and closes the underlying writer.
func (p *PickPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
