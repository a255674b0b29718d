package events

import "github.com/nats-io/nats.go"

// Test-only constructors; production code goes through NewPublisher.

func NewNATSPublisherWithConn(conn *nats.Conn) (*NATSPublisher, error) {
	return newNATSPublisherWithConn(conn)
}

func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	return newKafkaPublisher(cfg)
}

func NewRedisPublisher(cfg RedisConfig) (*RedisPublisher, error) {
	return newRedisPublisher(cfg)
}
