// Package websockets handles WebSocket connection lifecycle for the
// notification stream. Deployed behind API Gateway, with a local gorilla
// server for development.
package websockets

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/skillswap/skill-exchange/pkg/storage"
)

// Handler handles WebSocket connections.
type Handler struct {
	connections storage.ConnectionStore
}

// NewHandler creates a new Handler.
func NewHandler(connections storage.ConnectionStore) *Handler {
	return &Handler{connections: connections}
}

// HandleConnect handles new client connections. The wallet address arrives
// as a query string parameter since browsers cannot set headers on the
// WebSocket handshake.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	wallet := request.QueryStringParameters["wallet"]
	if wallet == "" {
		slog.Warn("connection attempt without wallet address", "connectionId", request.RequestContext.ConnectionID)
		return events.APIGatewayProxyResponse{StatusCode: 400}, nil
	}

	slog.Info("Client connected", "connectionId", request.RequestContext.ConnectionID, "wallet", wallet)

	if err := h.connections.AddConnection(ctx, wallet, request.RequestContext.ConnectionID); err != nil {
		slog.Error("failed to save connection ID", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: 500}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

// HandleDisconnect handles client disconnections.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Info("Client disconnected", "connectionId", request.RequestContext.ConnectionID)

	if err := h.connections.RemoveConnection(ctx, request.RequestContext.ConnectionID); err != nil {
		slog.Error("failed to delete connection ID", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: 500}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

// HandleDefault handles messages sent from a client.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Info("Received message", "connectionId", request.RequestContext.ConnectionID, "body", request.Body)
	// Clients are not expected to send messages, but we log them just in case.
	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections by default for local development.
		return true
	},
}

// ServeHTTP handles WebSocket requests for the local development server.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		http.Error(w, "wallet query parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	// Generate a unique connection ID for local connections.
	connectionID := uuid.New().String()
	slog.Info("Client connected locally", "connectionId", connectionID, "wallet", wallet)

	ctx := r.Context()
	if err := h.connections.AddConnection(ctx, wallet, connectionID); err != nil {
		slog.Error("failed to save local connection ID", "error", err)
		return
	}
	defer func() {
		if err := h.connections.RemoveConnection(context.Background(), connectionID); err != nil {
			slog.Error("failed to delete local connection ID", "error", err)
		}
		slog.Info("Client disconnected locally", "connectionId", connectionID)
	}()

	// Block reading until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
