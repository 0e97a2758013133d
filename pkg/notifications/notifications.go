package notifications

import "context"

// MessageType classifies a notification for the client.
type MessageType string

const (
	// TypeSessionUpdate is sent on every session status transition.
	TypeSessionUpdate MessageType = "sessionUpdate"
	// TypeBidUpdate is sent when a bid is submitted or resolved.
	TypeBidUpdate MessageType = "bidUpdate"
	// TypeCertificateUpdate is sent when a certificate is created or minted.
	TypeCertificateUpdate MessageType = "certificateUpdate"
)

// Message is one notification addressed to a user.
type Message struct {
	Type    MessageType            `json:"type"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Notifier delivers notifications to a user's live connections. Delivery is
// fire-and-forget: a failure is logged and counted, never propagated into
// the transaction that triggered it.
type Notifier interface {
	Notify(ctx context.Context, walletAddress string, message Message) error
}

// NoOpNotifier discards every notification.
type NoOpNotifier struct{}

// Notify does nothing.
func (n *NoOpNotifier) Notify(ctx context.Context, walletAddress string, message Message) error {
	return nil
}
