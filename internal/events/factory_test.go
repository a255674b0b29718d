package events

import (
	"context"
	"testing"

	"github.com/aircastio/aircast/internal/config"
)

func TestNewPublisher_DefaultsToMemory(t *testing.T) {
	p, err := NewPublisher(config.EventsConfig{})
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer func() { _ = p.Close() }()

	if _, ok := p.(*MemoryPublisher); !ok {
		t.Errorf("Default publisher is %T, want *MemoryPublisher", p)
	}
}

func TestNewPublisher_Memory(t *testing.T) {
	p, err := NewPublisher(config.EventsConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer func() { _ = p.Close() }()

	if err := p.Publish(context.Background(), "s", []byte("x")); err != nil {
		t.Errorf("Publish failed: %v", err)
	}
}

func TestNewPublisher_None(t *testing.T) {
	p, err := NewPublisher(config.EventsConfig{Type: "none"})
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer func() { _ = p.Close() }()

	if err := p.Publish(context.Background(), "s", []byte("x")); err != nil {
		t.Errorf("Noop publish failed: %v", err)
	}
	count, err := p.PublishBatch(context.Background(), []BatchMessage{{Subject: "s"}, {Subject: "s"}})
	if err != nil || count != 2 {
		t.Errorf("Noop batch = (%d, %v), want (2, nil)", count, err)
	}
}

func TestNewPublisher_CaseInsensitive(t *testing.T) {
	p, err := NewPublisher(config.EventsConfig{Type: "MEMORY"})
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer func() { _ = p.Close() }()
}

func TestNewPublisher_Unsupported(t *testing.T) {
	if _, err := NewPublisher(config.EventsConfig{Type: "rabbitmq"}); err == nil {
		t.Error("Expected an error for an unsupported type")
	}
}

func TestNewPublisher_KafkaWithoutBrokers(t *testing.T) {
	if _, err := NewPublisher(config.EventsConfig{Type: "kafka"}); err == nil {
		t.Error("Expected an error when brokers are missing")
	}
}
