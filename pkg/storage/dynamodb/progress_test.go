package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skillswap/skill-exchange/pkg/models"
	"github.com/skillswap/skill-exchange/pkg/progress"
	"github.com/skillswap/skill-exchange/pkg/storage"
	"github.com/skillswap/skill-exchange/pkg/storage/dynamodb/mocks"
)

func inProgressSession() *models.Session {
	s := sessionInStatus(models.SessionInProgress)
	s.Skill = "Go Programming"
	s.DurationMinutes = 60
	s.Progress = progress.NewTracking(s.Skill, s.DurationMinutes)
	return s
}

func TestUpdateMilestone(t *testing.T) {
	t.Run("Success Recomputes Progress", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		base := inProgressSession()
		milestoneID := base.Progress.Milestones[0].Id
		sessionAV, _ := attributevalue.MarshalMap(base)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{}, nil)

		session, err := store.UpdateMilestone(context.Background(), "sess1", "0xlearner", milestoneID, true, "done early")

		assert.NoError(t, err)
		assert.True(t, session.Progress.Milestones[0].Completed)
		assert.Equal(t, "done early", session.Progress.Milestones[0].Notes)
		assert.Equal(t, int32(20), session.Progress.OverallProgress)
		mockClient.AssertExpectations(t)
	})

	t.Run("Milestone Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(inProgressSession())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, err := store.UpdateMilestone(context.Background(), "sess1", "0xlearner", "nope", true, "")

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Outsider Cannot Update", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(inProgressSession())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, err := store.UpdateMilestone(context.Background(), "sess1", "0xstranger", "m1", true, "")

		assert.ErrorIs(t, err, storage.ErrUnauthorized)
		mockClient.AssertExpectations(t)
	})

	t.Run("Session Not In Progress", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(sessionInStatus(models.SessionConfirmed))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)

		_, err := store.UpdateMilestone(context.Background(), "sess1", "0xlearner", "m1", true, "")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockClient.AssertExpectations(t)
	})

	t.Run("Stale Version Loses Condition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		base := inProgressSession()
		milestoneID := base.Progress.Milestones[0].Id
		sessionAV, _ := attributevalue.MarshalMap(base)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.UpdateMilestone(context.Background(), "sess1", "0xlearner", milestoneID, true, "")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockClient.AssertExpectations(t)
	})
}

func TestUpdateMeetingData(t *testing.T) {
	t.Run("Verifies Attendance", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(inProgressSession())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{}, nil)

		session, err := store.UpdateMeetingData(context.Background(), "sess1", "0xtutor", 2, 90, 50, "https://rec.example/xyz")

		assert.NoError(t, err)
		assert.True(t, session.Progress.AttendanceVerified)
		assert.Equal(t, int32(50), session.Progress.TimeSpentMinutes)
		assert.Equal(t, "https://rec.example/xyz", session.Progress.RecordingUrl)
		mockClient.AssertExpectations(t)
	})

	t.Run("Solo Meeting Does Not Verify", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		sessionAV, _ := attributevalue.MarshalMap(inProgressSession())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: sessionAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{}, nil)

		session, err := store.UpdateMeetingData(context.Background(), "sess1", "0xtutor", 1, 100, 50, "")

		assert.NoError(t, err)
		assert.False(t, session.Progress.AttendanceVerified)
		mockClient.AssertExpectations(t)
	})
}
