package kafka

import (
	"context"
	"strconv"

	"github.com/Astemirdum/library-resource/pkg/circuit_breaker"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, event LibraryEvent)
}

type publisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

// NewPublisher sends events synchronously through producer. Failures are logged and dropped.
func NewPublisher(producer sarama.SyncProducer, topic string, cb circuit_breaker.CircuitBreaker, log *zap.Logger) Publisher {
	return &publisher{
		producer: producer,
		topic:    topic,
		cb:       cb,
		log:      log.Named("publisher"),
	}
}

func (p *publisher) Publish(_ context.Context, event LibraryEvent) {
	msg, err := Message(p.topic, event)
	if err != nil {
		p.log.Error("kafka.Message", zap.Error(err))
		return
	}
	err = p.cb.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		p.log.Warn("publish library event",
			zap.String("type", string(event.EventType)),
			zap.Int64("libraryId", event.LibraryID),
			zap.Error(err))
		return
	}
	p.log.Debug("library event published", zap.String("type", string(event.EventType)), zap.Int64("libraryId", event.LibraryID))
}

type nopPublisher struct{}

// NopPublisher is used when no broker is configured.
func NopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, LibraryEvent) {}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
