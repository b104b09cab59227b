package events

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/checkout"
)

const (
	DefaultTopic = "checkout-status"
	batchSize    = 100
)

// MessageWriter is the part of *kafka.Writer the publisher uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

// KafkaPublisher is a checkout status sink. Notify only queues the event;
// Run ships queued events to Kafka in batches so checkout never waits on the broker.
type KafkaPublisher struct {
	writer       MessageWriter
	queue        chan checkout.StatusEvent
	flushTick    time.Duration
	flushTimeout time.Duration
	dropped      atomic.Int64
	log          *zap.Logger
}

func NewKafkaPublisher(w MessageWriter, bufferSize int, log *zap.Logger) *KafkaPublisher {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &KafkaPublisher{
		writer:       w,
		queue:        make(chan checkout.StatusEvent, bufferSize),
		flushTick:    time.Second,
		flushTimeout: 5 * time.Second,
		log:          log,
	}
}

func (p *KafkaPublisher) Notify(_ context.Context, event checkout.StatusEvent) {
	select {
	case p.queue <- event:
	default:
		n := p.dropped.Add(1)
		p.log.Warn("status event queue full, dropping event",
			zap.String("attempt_id", event.AttemptID),
			zap.Int64("dropped_total", n))
	}
}

// Dropped counts events discarded because the queue was full
func (p *KafkaPublisher) Dropped() int64 {
	return p.dropped.Load()
}

// Run flushes queued events every tick until ctx is done, then flushes what is left
func (p *KafkaPublisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.flushTick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.flush(ctx)
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.flushTimeout)
			for len(p.queue) > 0 {
				if !p.flush(final) {
					break
				}
			}
			cancel()
			return
		}
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// flush writes up to one batch and reports whether it succeeded
func (p *KafkaPublisher) flush(ctx context.Context) bool {
	msgs := make([]kafka.Message, 0, batchSize)
drain:
	for len(msgs) < batchSize {
		select {
		case event := <-p.queue:
			msg, err := toMessage(event)
			if err != nil {
				p.log.Error("failed to marshal status event", zap.String("attempt_id", event.AttemptID), zap.Error(err))
				continue
			}
			msgs = append(msgs, msg)
		default:
			break drain
		}
	}
	if len(msgs) == 0 {
		return true
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.log.Error("failed to publish status events", zap.Int("count", len(msgs)), zap.Error(err))
		return false
	}
	return true
}

func toMessage(event checkout.StatusEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event.AttemptID), // keeps an attempt's events ordered
		Value: value,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("checkout." + event.Stage.String())},
			{Key: "severity", Value: []byte(event.Status.Severity)},
		},
	}, nil
}
