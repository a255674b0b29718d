package events

import (
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"
)

// Event payloads are JSON wrapped in a one-byte envelope. Small events go out
// as plain JSON; bodies past the threshold (forecast arrays grow with the
// horizon) are snappy-compressed. The marker byte keeps the format
// self-describing for consumers in other languages.
const (
	markerRaw    = 0x00
	markerSnappy = 0x01

	// compressThreshold is the JSON size, in bytes, above which payloads
	// are compressed. Below it snappy overhead outweighs the savings.
	compressThreshold = 512
)

// Encode marshals an event into an enveloped payload for the wire
func Encode(event interface{}) ([]byte, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	if len(raw) <= compressThreshold {
		return append([]byte{markerRaw}, raw...), nil
	}
	return append([]byte{markerSnappy}, snappy.Encode(nil, raw)...), nil
}

// Decode unwraps an enveloped payload and unmarshals the event
func Decode(data []byte, event interface{}) error {
	if len(data) < 2 {
		return fmt.Errorf("event payload too short: %d bytes", len(data))
	}

	var raw []byte
	switch data[0] {
	case markerRaw:
		raw = data[1:]
	case markerSnappy:
		var err error
		raw, err = snappy.Decode(nil, data[1:])
		if err != nil {
			return fmt.Errorf("failed to decompress event: %w", err)
		}
	default:
		return fmt.Errorf("unknown event envelope marker 0x%02x", data[0])
	}

	if err := json.Unmarshal(raw, event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return nil
}
