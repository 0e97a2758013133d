package storage

import "context"

// ConnectionStore defines the interface for tracking a user's live WebSocket
// connections, used by the notification publisher.
type ConnectionStore interface {
	AddConnection(ctx context.Context, walletAddress, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetConnectionsForUser(ctx context.Context, walletAddress string) ([]string, error)
}
