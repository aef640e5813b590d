package kafka

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
)

const LibraryEventsTopic = "library-events"

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

type LibraryEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	EventType  EventType `json:"eventType"`
	LibraryID  int64     `json:"libraryId"`
	LibraryUid string    `json:"libraryUid,omitempty"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3
	defaultCfg.Producer.Timeout = 5 * time.Second

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

// Message keys events by library id so one library's events stay ordered within a partition.
func Message(topic string, event LibraryEvent) (*sarama.ProducerMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(formatID(event.LibraryID)),
		Value:     sarama.ByteEncoder(data),
		Timestamp: event.Timestamp,
	}, nil
}
