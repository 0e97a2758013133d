package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/skillswap/skill-exchange/pkg/metrics"
	"github.com/skillswap/skill-exchange/pkg/minting"
	"github.com/skillswap/skill-exchange/pkg/models"
	"github.com/skillswap/skill-exchange/pkg/storage"
	dydbstore "github.com/skillswap/skill-exchange/pkg/storage/dynamodb"
)

var store storage.Storage
var minter minting.Minter

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	tables := dydbstore.Tables{
		Certificates: os.Getenv("DYNAMODB_CERTIFICATES_TABLE_NAME"),
	}
	if tables.Certificates == "" {
		log.Fatal("DYNAMODB_CERTIFICATES_TABLE_NAME environment variable not set")
	}

	mintServiceURL := os.Getenv("MINT_SERVICE_URL")
	if mintServiceURL == "" {
		log.Fatal("MINT_SERVICE_URL environment variable not set")
	}
	minter = minting.NewHTTPMinter(mintServiceURL)

	// The minting lambda never enqueues further work, so we pass nil.
	store = dydbstore.New(dbClient, nil, tables)
}

// HandleRequest processes SQS messages and mints the certificates.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var cert models.Certificate
		if err := json.Unmarshal([]byte(message.Body), &cert); err != nil {
			log.Printf("ERROR: failed to unmarshal certificate from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		log.Printf("Attempting to mint certificate %s", cert.Id)

		result, err := minter.Mint(ctx, &cert)
		if err != nil {
			log.Printf("ERROR: failed to mint certificate %s: %v", cert.Id, err)
			metrics.CertificatesMinted.WithLabelValues("failed").Inc()
			if markErr := store.MarkCertificateFailed(ctx, cert.Id); markErr != nil && !errors.Is(markErr, storage.ErrCertificateNotPending) {
				log.Printf("ERROR: failed to mark certificate %s as failed: %v", cert.Id, markErr)
				return markErr
			}
			continue
		}

		if err := store.ApplyMintResult(ctx, cert.Id, *result); err != nil {
			if errors.Is(err, storage.ErrCertificateNotPending) {
				// A redelivered message for a certificate that already
				// resolved. Nothing left to do.
				log.Printf("Certificate %s is no longer pending, skipping", cert.Id)
				continue
			}
			log.Printf("ERROR: failed to record mint result for certificate %s: %v", cert.Id, err)
			return err
		}

		metrics.CertificatesMinted.WithLabelValues("minted").Inc()
		log.Printf("Successfully minted certificate %s as token %s", cert.Id, result.TokenId)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
