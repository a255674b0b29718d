package events

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// setupTestNATS starts an embedded NATS server with JetStream for tests
func setupTestNATS(t *testing.T) (string, func()) {
	t.Helper()

	opts := &server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		t.Fatalf("Failed to create NATS server: %v", err)
	}
	go ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		t.Fatal("NATS server not ready")
	}

	cleanup := func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	}
	return ns.ClientURL(), cleanup
}

func connectTestNATS(t *testing.T, url string) *nats.Conn {
	t.Helper()
	conn, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("Failed to connect to NATS: %v", err)
	}
	return conn
}

func TestNATSPublisher_Publish(t *testing.T) {
	url, cleanup := setupTestNATS(t)
	defer cleanup()

	conn := connectTestNATS(t, url)
	p, err := NewNATSPublisherWithConn(conn)
	if err != nil {
		t.Fatalf("Failed to create publisher: %v", err)
	}
	defer func() { _ = p.Close() }()

	subject := "aircast.comparison.completed"
	if err := p.EnsureStream(subject); err != nil {
		t.Fatalf("EnsureStream failed: %v", err)
	}

	event := ComparisonCompleted{RunID: "run-1", BestModel: "seasonal"}
	payload, err := Encode(event)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Publish(ctx, subject, payload); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	// Read the event back through a JetStream subscription
	sub, err := p.js.SubscribeSync(subject, nats.DeliverAll())
	if err != nil {
		t.Fatalf("SubscribeSync failed: %v", err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	msg, err := sub.NextMsg(5 * time.Second)
	if err != nil {
		t.Fatalf("NextMsg failed: %v", err)
	}

	var decoded ComparisonCompleted
	if err := Decode(msg.Data, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.BestModel != "seasonal" {
		t.Errorf("Decoded event = %+v", decoded)
	}
}

func TestNATSPublisher_PublishBatch(t *testing.T) {
	url, cleanup := setupTestNATS(t)
	defer cleanup()

	conn := connectTestNATS(t, url)
	p, err := NewNATSPublisherWithConn(conn)
	if err != nil {
		t.Fatalf("Failed to create publisher: %v", err)
	}
	defer func() { _ = p.Close() }()

	subject := "aircast.batch"
	if err := p.EnsureStream(subject); err != nil {
		t.Fatal(err)
	}

	messages := make([]BatchMessage, 10)
	for i := range messages {
		payload, err := Encode(ComparisonCompleted{RunID: "run", Rows: i})
		if err != nil {
			t.Fatal(err)
		}
		messages[i] = BatchMessage{Subject: subject, Data: payload}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	count, err := p.PublishBatch(ctx, messages)
	if err != nil {
		t.Fatalf("PublishBatch failed: %v", err)
	}
	if count != 10 {
		t.Errorf("Published count = %d, want 10", count)
	}
}

func TestNATSPublisher_EnsureStreamIdempotent(t *testing.T) {
	url, cleanup := setupTestNATS(t)
	defer cleanup()

	conn := connectTestNATS(t, url)
	p, err := NewNATSPublisherWithConn(conn)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = p.Close() }()

	for i := 0; i < 3; i++ {
		if err := p.EnsureStream("aircast.repeat"); err != nil {
			t.Fatalf("EnsureStream call %d failed: %v", i, err)
		}
	}
}

func TestSanitizeStreamName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aircast.comparison.completed", "aircast_comparison_completed"},
		{"plain", "plain"},
		{"with-dash_und", "with-dash_und"},
		{"a>b*c", "a_b_c"},
	}
	for _, tc := range tests {
		if got := sanitizeStreamName(tc.in); got != tc.want {
			t.Errorf("sanitizeStreamName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
