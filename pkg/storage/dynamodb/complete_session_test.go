package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skillswap/skill-exchange/pkg/models"
	schedulermocks "github.com/skillswap/skill-exchange/pkg/scheduler/mocks"
	"github.com/skillswap/skill-exchange/pkg/storage"
	"github.com/skillswap/skill-exchange/pkg/storage/dynamodb/mocks"
)

func TestCompleteSession(t *testing.T) {
	completableSession := func() *models.Session {
		return &models.Session{
			Id:              "sess1",
			Tutor:           "0xtutor",
			Learner:         "0xlearner",
			Skill:           "Go Programming",
			TokenAmount:     20,
			DurationMinutes: 60,
			Status:          models.SessionInProgress,
			TransactionId:   "tx1",
			Version:         3,
			Progress: &models.ProgressTracking{
				Milestones: []models.Milestone{
					{Id: "m1", Title: "Kickoff and goal setting", Completed: true},
					{Id: "m2", Title: "Fundamentals walkthrough", Completed: true},
					{Id: "m3", Title: "Guided practice", Completed: true},
					{Id: "m4", Title: "Independent exercise", Completed: true},
					{Id: "m5", Title: "Review and wrap-up", Completed: false},
				},
				OverallProgress:    80,
				TimeSpentMinutes:   55,
				AttendanceVerified: true,
				CanComplete:        true,
			},
		}
	}
	tutor := &models.User{WalletAddress: "0xtutor", Balance: 0, Version: 4}

	mockGets := func(mockClient *mocks.DynamoDBAPI, session *models.Session) {
		sessionAV, _ := attributevalue.MarshalMap(session)
		tutorAV, _ := attributevalue.MarshalMap(tutor)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: tutorAV}, nil)
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockScheduler := new(schedulermocks.Scheduler)
		store := &Store{Client: mockClient, Scheduler: mockScheduler, Tables: testTables}
		mockGets(mockClient, completableSession())

		var captured *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*dynamodb.TransactWriteItemsInput)
			}).
			Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)
		mockScheduler.On("ScheduleMint", mock.Anything, mock.AnythingOfType("*models.Certificate")).Once().Return(nil)

		session, cert, err := store.CompleteSession(context.Background(), "sess1", "0xtutor")

		assert.NoError(t, err)
		assert.Equal(t, models.SessionCompleted, session.Status)
		assert.Equal(t, models.CertificatePending, cert.Status)
		assert.Equal(t, "0xlearner", cert.Recipient)
		assert.Equal(t, "0xtutor", cert.Issuer)
		assert.Equal(t, int32(80), cert.ProgressAchieved)
		assert.Len(t, cert.ObjectivesCompleted, 4)

		// Tutor credit, session flip, transaction flip, certificate put,
		// ledger pair.
		assert.Len(t, captured.TransactItems, 6)
		credit := captured.TransactItems[0].Update
		assert.Equal(t, testTables.Users, *credit.TableName)
		assert.Contains(t, *credit.UpdateExpression, "balance = balance + :amount")
		assert.Contains(t, *credit.UpdateExpression, "sessions_completed")
		assert.Equal(t, testTables.Certificates, *captured.TransactItems[3].Put.TableName)
		mockClient.AssertExpectations(t)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("Enqueue Failure Does Not Fail Completion", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockScheduler := new(schedulermocks.Scheduler)
		store := &Store{Client: mockClient, Scheduler: mockScheduler, Tables: testTables}
		mockGets(mockClient, completableSession())

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)
		mockScheduler.On("ScheduleMint", mock.Anything, mock.Anything).Once().Return(errors.New("queue unavailable"))

		session, cert, err := store.CompleteSession(context.Background(), "sess1", "0xtutor")

		assert.NoError(t, err)
		assert.Equal(t, models.SessionCompleted, session.Status)
		assert.Equal(t, models.CertificatePending, cert.Status)
		mockClient.AssertExpectations(t)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("Learner Cannot Complete", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(completableSession())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, _, err := store.CompleteSession(context.Background(), "sess1", "0xlearner")

		assert.ErrorIs(t, err, storage.ErrUnauthorized)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not In Progress", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		session := completableSession()
		session.Status = models.SessionConfirmed
		sessionAV, _ := attributevalue.MarshalMap(session)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, _, err := store.CompleteSession(context.Background(), "sess1", "0xtutor")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockClient.AssertExpectations(t)
	})

	t.Run("Progress Below Threshold", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		session := completableSession()
		session.Progress.OverallProgress = 60
		sessionAV, _ := attributevalue.MarshalMap(session)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, _, err := store.CompleteSession(context.Background(), "sess1", "0xtutor")

		assert.ErrorIs(t, err, storage.ErrCompletionRequirements)
		mockClient.AssertExpectations(t)
	})

	t.Run("Attendance Not Verified", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		session := completableSession()
		session.Progress.AttendanceVerified = false
		sessionAV, _ := attributevalue.MarshalMap(session)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, _, err := store.CompleteSession(context.Background(), "sess1", "0xtutor")

		assert.ErrorIs(t, err, storage.ErrCompletionRequirements)
		mockClient.AssertExpectations(t)
	})

	t.Run("Concurrent Complete Loses Condition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}
		mockGets(mockClient, completableSession())

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
			},
		})

		_, _, err := store.CompleteSession(context.Background(), "sess1", "0xtutor")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockClient.AssertExpectations(t)
	})
}
