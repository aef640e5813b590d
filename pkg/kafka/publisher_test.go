package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/library-resource/pkg/circuit_breaker"
	"github.com/Astemirdum/library-resource/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()

	event := kafka.LibraryEvent{
		Timestamp:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		EventType:  kafka.EventCreated,
		LibraryID:  42,
		LibraryUid: "83575e12-7ce0-48ee-9931-51919ff3c9ee",
	}
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.LibraryEventsTopic {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "42" {
			return errors.New("unexpected key " + string(key))
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var got kafka.LibraryEvent
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if !got.Timestamp.Equal(event.Timestamp) || got.EventType != event.EventType ||
			got.LibraryID != event.LibraryID || got.LibraryUid != event.LibraryUid {
			return errors.New("unexpected event")
		}
		return nil
	})

	p := kafka.NewPublisher(producer, kafka.LibraryEventsTopic, circuit_breaker.New(5, time.Minute, 0.5, 1), zap.NewNop())
	p.Publish(context.Background(), event)
}

func TestPublisher_BrokerDown(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	cb := circuit_breaker.New(1, time.Minute, 1, 1)
	p := kafka.NewPublisher(producer, kafka.LibraryEventsTopic, cb, zap.NewNop())

	p.Publish(context.Background(), kafka.LibraryEvent{EventType: kafka.EventDeleted, LibraryID: 1})
	require.Equal(t, circuit_breaker.Open, cb.State())

	// the open breaker keeps the producer untouched; an unexpected send would fail the mock
	p.Publish(context.Background(), kafka.LibraryEvent{EventType: kafka.EventDeleted, LibraryID: 2})
}
