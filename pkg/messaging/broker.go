package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Booking lifecycle channels consumed by downstream workers (notification
// fan-out, dashboards).
const (
	ChannelBookingCreated    = "booking.created"
	ChannelBookingTransition = "booking.transition"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
