package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skillswap/skill-exchange/pkg/models"
	"github.com/skillswap/skill-exchange/pkg/storage"
	"github.com/skillswap/skill-exchange/pkg/storage/dynamodb/mocks"
)

func TestAcceptBid(t *testing.T) {
	openRequest := func() *models.LearningRequest {
		return &models.LearningRequest{
			Id:        "req1",
			Owner:     "0xlearner",
			Skill:     "Spanish Language",
			MaxBudget: 50,
			Status:    models.RequestOpen,
			Version:   2,
			Bids: []models.Bid{
				{Id: "bid1", Tutor: "0xtutor", RatePerHour: 20, DurationMinutes: 60, TotalCost: 20, Status: models.BidPending},
				{Id: "bid2", Tutor: "0xother", RatePerHour: 30, DurationMinutes: 60, TotalCost: 30, Status: models.BidPending},
			},
			CreatedAt: time.Now(),
		}
	}
	learner := &models.User{WalletAddress: "0xlearner", Balance: 100, Version: 1}

	mockGets := func(mockClient *mocks.DynamoDBAPI, req *models.LearningRequest) {
		reqAV, _ := attributevalue.MarshalMap(req)
		learnerAV, _ := attributevalue.MarshalMap(learner)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: reqAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: learnerAV}, nil)
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}
		mockGets(mockClient, openRequest())

		var captured *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*dynamodb.TransactWriteItemsInput)
			}).
			Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		session, err := store.AcceptBid(context.Background(), "req1", "bid1", "0xlearner")

		assert.NoError(t, err)
		assert.Equal(t, models.SessionConfirmed, session.Status)
		assert.Equal(t, "0xtutor", session.Tutor)
		assert.Equal(t, "0xlearner", session.Learner)
		assert.Equal(t, int64(20), session.TokenAmount)
		assert.NotEmpty(t, session.TransactionId)

		// Debit, request rewrite, session put, transaction put, ledger pair.
		assert.Len(t, captured.TransactItems, 6)
		reqUpdate := captured.TransactItems[1].Update
		assert.Equal(t, testTables.Requests, *reqUpdate.TableName)
		assert.Contains(t, *reqUpdate.ConditionExpression, ":open")

		// The sibling pending bid must be rejected in the same write.
		var rewritten []models.Bid
		err = attributevalue.Unmarshal(reqUpdate.ExpressionAttributeValues[":bids"], &rewritten)
		assert.NoError(t, err)
		assert.Equal(t, models.BidAccepted, rewritten[0].Status)
		assert.Equal(t, models.BidRejected, rewritten[1].Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not The Owner", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		reqAV, _ := attributevalue.MarshalMap(openRequest())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: reqAV}, nil)

		_, err := store.AcceptBid(context.Background(), "req1", "bid1", "0xtutor")

		assert.ErrorIs(t, err, storage.ErrUnauthorized)
		mockClient.AssertExpectations(t)
	})

	t.Run("Request Not Open", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		req := openRequest()
		req.Status = models.RequestInProgress
		reqAV, _ := attributevalue.MarshalMap(req)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: reqAV}, nil)

		_, err := store.AcceptBid(context.Background(), "req1", "bid1", "0xlearner")

		assert.ErrorIs(t, err, storage.ErrRequestNotOpen)
		mockClient.AssertExpectations(t)
	})

	t.Run("Bid Already Resolved", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		req := openRequest()
		req.Bids[0].Status = models.BidWithdrawn
		reqAV, _ := attributevalue.MarshalMap(req)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: reqAV}, nil)

		_, err := store.AcceptBid(context.Background(), "req1", "bid1", "0xlearner")

		assert.ErrorIs(t, err, storage.ErrBidNotPending)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Balance Precheck", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		reqAV, _ := attributevalue.MarshalMap(openRequest())
		poor := &models.User{WalletAddress: "0xlearner", Balance: 5, Version: 1}
		poorAV, _ := attributevalue.MarshalMap(poor)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: reqAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: poorAV}, nil)

		_, err := store.AcceptBid(context.Background(), "req1", "bid1", "0xlearner")

		assert.ErrorIs(t, err, storage.ErrInsufficientBalance)
		mockClient.AssertExpectations(t)
	})

	t.Run("Concurrent Accept Loses Condition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}
		mockGets(mockClient, openRequest())

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
			},
		})

		_, err := store.AcceptBid(context.Background(), "req1", "bid1", "0xlearner")

		assert.ErrorIs(t, err, storage.ErrRequestNotOpen)
		mockClient.AssertExpectations(t)
	})
}
