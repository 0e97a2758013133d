package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/skillswap/skill-exchange/pkg/scheduler"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client used by the store,
// so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables holds the DynamoDB table names the store operates on.
type Tables struct {
	Users        string
	Requests     string
	Sessions     string
	Transactions string
	Certificates string
	Ledger       string
	Connections  string
}

// Store implements the Storage interface using AWS DynamoDB. Conditional
// writes and TransactWriteItems are the only concurrency-safety mechanism:
// every status flip is guarded on the current status and every balance
// mutation rides in the same transaction as its owning status flip.
type Store struct {
	Client    DynamoDBAPI
	Scheduler scheduler.Scheduler
	Tables    Tables
}

// New creates a new Store. The scheduler may be nil for components that
// never enqueue mint jobs.
func New(client DynamoDBAPI, sched scheduler.Scheduler, tables Tables) *Store {
	return &Store{
		Client:    client,
		Scheduler: sched,
		Tables:    tables,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
