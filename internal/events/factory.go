package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/aircastio/aircast/internal/config"
)

// Publisher types selectable through configuration
const (
	TypeMemory = "memory"
	TypeNATS   = "nats"
	TypeRedis  = "redis"
	TypeKafka  = "kafka"
	TypeNone   = "none"
)

// NewPublisher creates a Publisher from configuration. The default is the
// in-memory publisher so the service runs without a broker.
func NewPublisher(cfg config.EventsConfig) (Publisher, error) {
	publisherType := strings.ToLower(cfg.Type)
	if publisherType == "" {
		publisherType = TypeMemory
	}

	switch publisherType {
	case TypeMemory:
		return NewMemoryPublisher(), nil

	case TypeNATS:
		return newNATSPublisher(cfg.URL, cfg.Username, cfg.Password)

	case TypeRedis:
		return newRedisPublisher(RedisConfig{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Stream:   cfg.RedisStream,
		})

	case TypeKafka:
		return newKafkaPublisher(KafkaConfig{
			Brokers: cfg.KafkaBrokers,
		})

	case TypeNone:
		return noopPublisher{}, nil

	default:
		return nil, fmt.Errorf("unsupported events type: %s (supported: memory, nats, redis, kafka, none)", cfg.Type)
	}
}

// noopPublisher discards every event
type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, []byte) error { return nil }

func (noopPublisher) PublishBatch(_ context.Context, messages []BatchMessage) (int, error) {
	return len(messages), nil
}

func (noopPublisher) Close() error { return nil }
