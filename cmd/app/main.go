package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/skillswap/skill-exchange/pkg/handlers"
	wshandlers "github.com/skillswap/skill-exchange/pkg/handlers/websockets"
	"github.com/skillswap/skill-exchange/pkg/notifications"
	"github.com/skillswap/skill-exchange/pkg/scheduler"
	dydbstore "github.com/skillswap/skill-exchange/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	tables := dydbstore.Tables{
		Users:        os.Getenv("DYNAMODB_USERS_TABLE_NAME"),
		Requests:     os.Getenv("DYNAMODB_REQUESTS_TABLE_NAME"),
		Sessions:     os.Getenv("DYNAMODB_SESSIONS_TABLE_NAME"),
		Transactions: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Certificates: os.Getenv("DYNAMODB_CERTIFICATES_TABLE_NAME"),
		Ledger:       os.Getenv("DYNAMODB_LEDGER_TABLE_NAME"),
		Connections:  os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
	}
	if tables.Users == "" || tables.Requests == "" || tables.Sessions == "" ||
		tables.Transactions == "" || tables.Certificates == "" || tables.Ledger == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// SQS Client and Scheduler for the mint queue
	sqsClient := sqs.NewFromConfig(cfg)
	mintQueueURL := os.Getenv("MINT_QUEUE_URL")
	if mintQueueURL == "" {
		log.Fatal("MINT_QUEUE_URL environment variable not set")
	}
	mintScheduler := scheduler.NewSQSScheduler(sqsClient, mintQueueURL)

	// Create our storage implementation
	store := dydbstore.New(dbClient, mintScheduler, tables)

	// WebSocket notifications are optional; without an endpoint the API
	// still works, it just stays quiet.
	var notifier notifications.Notifier = &notifications.NoOpNotifier{}
	if endpoint := os.Getenv("WEBSOCKET_API_ENDPOINT"); endpoint != "" {
		wsNotifier, err := notifications.NewWebSocketNotifier(store, endpoint)
		if err != nil {
			log.Fatalf("failed to create websocket notifier: %v", err)
		}
		notifier = wsNotifier
	}

	router := handlers.NewRouter(store, notifier, logger)

	// Local development WebSocket endpoint. In production API Gateway
	// terminates the socket and invokes the websocket lambda instead.
	mux := http.NewServeMux()
	mux.Handle("/ws", wshandlers.NewHandler(store))
	mux.Handle("/", router)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	err = http.ListenAndServe(":"+port, mux)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
