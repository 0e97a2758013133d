package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/skillswap/skill-exchange/pkg/scheduler"
	"github.com/skillswap/skill-exchange/pkg/storage"
	dydbstore "github.com/skillswap/skill-exchange/pkg/storage/dynamodb"
)

var store storage.Storage
var mintScheduler scheduler.Scheduler

const stuckCertificateThreshold = 20 * time.Minute

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	sqsClient := sqs.NewFromConfig(cfg)

	// Initialize dependencies.
	mintQueueURL := os.Getenv("MINT_QUEUE_URL")
	if mintQueueURL == "" {
		log.Fatal("MINT_QUEUE_URL environment variable not set")
	}
	mintScheduler = scheduler.NewSQSScheduler(sqsClient, mintQueueURL)

	tables := dydbstore.Tables{
		Certificates: os.Getenv("DYNAMODB_CERTIFICATES_TABLE_NAME"),
	}
	if tables.Certificates == "" {
		log.Fatal("DYNAMODB_CERTIFICATES_TABLE_NAME environment variable not set")
	}

	store = dydbstore.New(dbClient, nil, tables)
}

// HandleRequest is triggered by an EventBridge Schedule. It re-enqueues
// certificates whose mint job was lost or never picked up.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation process for stuck certificates...")

	stuckCerts, err := store.GetStalePendingCertificates(ctx, stuckCertificateThreshold)
	if err != nil {
		log.Printf("ERROR: failed to get stuck certificates: %v", err)
		return err
	}

	if len(stuckCerts) == 0 {
		log.Println("No stuck certificates found.")
		return nil
	}

	log.Printf("Found %d stuck certificates. Re-enqueuing them...", len(stuckCerts))

	for i := range stuckCerts {
		cert := &stuckCerts[i]
		if err := mintScheduler.ScheduleMint(ctx, cert); err != nil {
			log.Printf("ERROR: failed to re-enqueue certificate %s: %v", cert.Id, err)
			// Continue to the next certificate, don't let one failure stop the whole batch.
			continue
		}
		log.Printf("Successfully re-enqueued certificate %s", cert.Id)
	}

	log.Println("Reconciliation process finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
