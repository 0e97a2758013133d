package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/skillswap/skill-exchange/pkg/models"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

const (
	tutorSessionsGSI   = "tutor-index"
	learnerSessionsGSI = "learner-index"
)

// GetSession retrieves a session by its ID.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Sessions),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get session from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}

	var session models.Session
	if err := attributevalue.UnmarshalMap(result.Item, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// ListSessionsByUser retrieves all sessions in which the user participates,
// as tutor or learner.
func (s *Store) ListSessionsByUser(ctx context.Context, walletAddress string) ([]models.Session, error) {
	asTutor, err := s.querySessionsByIndex(ctx, tutorSessionsGSI, "tutor", walletAddress)
	if err != nil {
		return nil, err
	}
	asLearner, err := s.querySessionsByIndex(ctx, learnerSessionsGSI, "learner", walletAddress)
	if err != nil {
		return nil, err
	}
	return append(asTutor, asLearner...), nil
}

func (s *Store) querySessionsByIndex(ctx context.Context, index, attribute, value string) ([]models.Session, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Sessions),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(fmt.Sprintf("%s = :value", attribute)),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberS{Value: value},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions by %s: %w", attribute, err)
	}

	var sessions []models.Session
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}

	return sessions, nil
}

// ApproveSession moves a requested session to confirmed. The write is
// conditional on the session still being requested, so a concurrent reject
// or cancel wins cleanly over a late approval.
func (s *Store) ApproveSession(ctx context.Context, sessionID, actor, meetingLink string) (*models.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if actor != session.Tutor {
		return nil, storage.ErrUnauthorized
	}
	if !models.CanTransition(session.Status, models.SessionConfirmed) {
		return nil, storage.ErrInvalidTransition
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	expr := "SET #status = :confirmed, version = version + :inc, updated_at = :now"
	values := map[string]types.AttributeValue{
		":confirmed": &types.AttributeValueMemberS{Value: string(models.SessionConfirmed)},
		":requested": &types.AttributeValueMemberS{Value: string(models.SessionRequested)},
		":inc":       &types.AttributeValueMemberN{Value: "1"},
		":now":       nowAV,
	}
	if meetingLink != "" {
		expr += ", meeting_link = :link"
		values[":link"] = &types.AttributeValueMemberS{Value: meetingLink}
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Sessions),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: sessionID},
		},
		UpdateExpression:    aws.String(expr),
		ConditionExpression: aws.String("#status = :requested"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: values,
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to approve session: %w", err)
	}

	session.Status = models.SessionConfirmed
	session.MeetingLink = meetingLink
	session.Version++
	session.UpdatedAt = now
	return session, nil
}
