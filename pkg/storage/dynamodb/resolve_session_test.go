package dynamodb

import (
	"context"
	"testing"

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

func sessionInStatus(status models.SessionStatus) *models.Session {
	return &models.Session{
		Id:            "sess1",
		Tutor:         "0xtutor",
		Learner:       "0xlearner",
		TokenAmount:   20,
		Status:        status,
		TransactionId: "tx1",
		Version:       2,
	}
}

func TestRejectSession(t *testing.T) {
	learner := &models.User{WalletAddress: "0xlearner", Balance: 80, Version: 2}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(sessionInStatus(models.SessionRequested))
		learnerAV, _ := attributevalue.MarshalMap(learner)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: learnerAV}, nil)

		var captured *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*dynamodb.TransactWriteItemsInput)
			}).
			Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		session, err := store.RejectSession(context.Background(), "sess1", "0xtutor", "schedule conflict")

		assert.NoError(t, err)
		assert.Equal(t, models.SessionRejected, session.Status)
		assert.Equal(t, "schedule conflict", session.RejectReason)

		// Refund credit, session flip, transaction fail, ledger pair.
		assert.Len(t, captured.TransactItems, 5)
		refund := captured.TransactItems[0].Update
		assert.Equal(t, testTables.Users, *refund.TableName)
		assert.Contains(t, *refund.UpdateExpression, "balance = balance + :amount")
		flip := captured.TransactItems[1].Update
		assert.Contains(t, *flip.UpdateExpression, "reject_reason")
		mockClient.AssertExpectations(t)
	})

	t.Run("Learner Cannot Reject", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(sessionInStatus(models.SessionRequested))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, err := store.RejectSession(context.Background(), "sess1", "0xlearner", "nope")

		assert.ErrorIs(t, err, storage.ErrUnauthorized)
		mockClient.AssertExpectations(t)
	})

	t.Run("Only From Requested", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(sessionInStatus(models.SessionConfirmed))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, err := store.RejectSession(context.Background(), "sess1", "0xtutor", "too late")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockClient.AssertExpectations(t)
	})
}

func TestCancelSession(t *testing.T) {
	learner := &models.User{WalletAddress: "0xlearner", Balance: 80, Version: 2}

	t.Run("Learner Cancels Confirmed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(sessionInStatus(models.SessionConfirmed))
		learnerAV, _ := attributevalue.MarshalMap(learner)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: learnerAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		session, err := store.CancelSession(context.Background(), "sess1", "0xlearner")

		assert.NoError(t, err)
		assert.Equal(t, models.SessionCanceled, session.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Tutor Cancels In Progress", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(sessionInStatus(models.SessionInProgress))
		learnerAV, _ := attributevalue.MarshalMap(learner)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: learnerAV}, nil)

		var captured *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*dynamodb.TransactWriteItemsInput)
			}).
			Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		session, err := store.CancelSession(context.Background(), "sess1", "0xtutor")

		assert.NoError(t, err)
		assert.Equal(t, models.SessionCanceled, session.Status)
		// The refund goes to the learner regardless of who canceled.
		refund := captured.TransactItems[0].Update
		assert.Equal(t, &types.AttributeValueMemberS{Value: "0xlearner"}, refund.Key["wallet_address"])
		mockClient.AssertExpectations(t)
	})

	t.Run("Tutor Cannot Cancel Requested", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(sessionInStatus(models.SessionRequested))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, err := store.CancelSession(context.Background(), "sess1", "0xtutor")

		assert.ErrorIs(t, err, storage.ErrUnauthorized)
		mockClient.AssertExpectations(t)
	})

	t.Run("Outsider Cannot Cancel", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(sessionInStatus(models.SessionConfirmed))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, err := store.CancelSession(context.Background(), "sess1", "0xstranger")

		assert.ErrorIs(t, err, storage.ErrUnauthorized)
		mockClient.AssertExpectations(t)
	})

	t.Run("Completed Cannot Be Canceled", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(sessionInStatus(models.SessionCompleted))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, err := store.CancelSession(context.Background(), "sess1", "0xlearner")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockClient.AssertExpectations(t)
	})

	t.Run("Concurrent Resolution Loses Condition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(sessionInStatus(models.SessionConfirmed))
		learnerAV, _ := attributevalue.MarshalMap(learner)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: learnerAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			},
		})

		_, err := store.CancelSession(context.Background(), "sess1", "0xlearner")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockClient.AssertExpectations(t)
	})
}
