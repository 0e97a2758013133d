package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"

	"github.com/skillswap/skill-exchange/pkg/metrics"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// PostToConnectionAPI is the subset of the API Gateway Management API used
// by the publisher.
type PostToConnectionAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// WebSocketNotifier delivers notifications to a user's live WebSocket
// connections through the API Gateway Management API. Stale connections are
// removed as they are discovered.
type WebSocketNotifier struct {
	Connections storage.ConnectionStore
	Client      PostToConnectionAPI
}

// NewWebSocketNotifier creates a WebSocketNotifier bound to the given
// WebSocket API endpoint.
func NewWebSocketNotifier(connections storage.ConnectionStore, apiEndpoint string) (*WebSocketNotifier, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})

	return &WebSocketNotifier{Connections: connections, Client: client}, nil
}

// Notify sends one message to every live connection of the user. Send
// failures are logged and counted; the last non-stale error is returned so
// callers can log it, but callers never treat it as fatal.
func (n *WebSocketNotifier) Notify(ctx context.Context, walletAddress string, message Message) error {
	connectionIDs, err := n.Connections.GetConnectionsForUser(ctx, walletAddress)
	if err != nil {
		metrics.NotificationFailures.Inc()
		return fmt.Errorf("failed to get connections for %s: %w", walletAddress, err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	var lastErr error
	for _, connectionID := range connectionIDs {
		_, err := n.Client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})
		if err == nil {
			continue
		}

		var goneErr *apigwtypes.GoneException
		if errors.As(err, &goneErr) {
			slog.Info("stale connection found, deleting", "connection_id", connectionID)
			if err := n.Connections.RemoveConnection(ctx, connectionID); err != nil {
				slog.Error("failed to delete stale connection", "connection_id", connectionID, "error", err)
			}
			continue
		}

		metrics.NotificationFailures.Inc()
		slog.Error("failed to post to connection", "connection_id", connectionID, "error", err)
		lastErr = err
	}

	return lastErr
}
