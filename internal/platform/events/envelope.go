package events

import (
	"time"

	"github.com/google/uuid"
)

// Envelope wraps every event the storefront emits.
type Envelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	OccurredAt    time.Time `json:"occurredAt"`
	Payload       T         `json:"payload"`
}

// NewEnvelope stamps payload with a fresh event id and the current time.
func NewEnvelope[T any](name string, version int, partitionKey, correlationID string, payload T) Envelope[T] {
	return Envelope[T]{
		EventName:     name,
		EventVersion:  version,
		EventID:       uuid.NewString(),
		CorrelationID: correlationID,
		Producer:      Producer,
		PartitionKey:  partitionKey,
		OccurredAt:    time.Now().UTC(),
		Payload:       payload,
	}
}
