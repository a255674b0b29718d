package events

import (
	"context"
	"fmt"
	"sync"
)

// MemoryPublisher buffers events per subject in memory. It is the default
// publisher so a bare deployment needs no broker, and it doubles as the
// test publisher.
type MemoryPublisher struct {
	channels map[string]chan []byte
	closed   bool
	mu       sync.RWMutex
}

// NewMemoryPublisher creates an in-memory publisher. Exported because other
// packages use it as the broker-free fixture in their tests.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{
		channels: make(map[string]chan []byte),
	}
}

func (p *MemoryPublisher) getOrCreateChannel(subject string) (chan []byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("publisher is closed")
	}
	if ch, exists := p.channels[subject]; exists {
		return ch, nil
	}

	ch := make(chan []byte, 1024)
	p.channels[subject] = ch
	return ch, nil
}

// Publish buffers a copy of the payload on the subject's channel
func (p *MemoryPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	ch, err := p.getOrCreateChannel(subject)
	if err != nil {
		return err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	select {
	case ch <- dataCopy:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("event buffer full for subject: %s", subject)
	}
}

// PublishBatch buffers each payload, skipping ones that do not fit
func (p *MemoryPublisher) PublishBatch(ctx context.Context, messages []BatchMessage) (int, error) {
	successCount := 0
	for _, msg := range messages {
		if err := p.Publish(ctx, msg.Subject, msg.Data); err != nil {
			continue
		}
		successCount++
	}
	return successCount, nil
}

// Close drops all buffered events
func (p *MemoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	for subject, ch := range p.channels {
		close(ch)
		delete(p.channels, subject)
	}
	return nil
}

// PendingCount returns the number of buffered events for a subject
func (p *MemoryPublisher) PendingCount(subject string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if ch, exists := p.channels[subject]; exists {
		return len(ch)
	}
	return 0
}

// Next pops the oldest buffered event for a subject, used in tests
func (p *MemoryPublisher) Next(subject string) ([]byte, bool) {
	p.mu.RLock()
	ch, exists := p.channels[subject]
	p.mu.RUnlock()

	if !exists {
		return nil, false
	}
	select {
	case data := <-ch:
		return data, true
	default:
		return nil, false
	}
}
