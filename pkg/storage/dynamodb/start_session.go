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
	"github.com/skillswap/skill-exchange/pkg/progress"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// StartSession moves a confirmed session to in-progress and attaches the
// freshly generated progress record. The conditional write on the confirmed
// status makes a duplicate start fail without regenerating milestones.
func (s *Store) StartSession(ctx context.Context, sessionID, actor string) (*models.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if actor != session.Tutor {
		return nil, storage.ErrUnauthorized
	}
	if !models.CanTransition(session.Status, models.SessionInProgress) {
		return nil, storage.ErrInvalidTransition
	}

	tracking := progress.NewTracking(session.Skill, session.DurationMinutes)
	now := time.Now()

	trackingAV, err := attributevalue.Marshal(tracking)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal progress record: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Sessions),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: sessionID},
		},
		UpdateExpression:    aws.String("SET #status = :in_progress, progress = :progress, version = version + :inc, updated_at = :now"),
		ConditionExpression: aws.String("#status = :confirmed"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":in_progress": &types.AttributeValueMemberS{Value: string(models.SessionInProgress)},
			":confirmed":   &types.AttributeValueMemberS{Value: string(models.SessionConfirmed)},
			":progress":    trackingAV,
			":inc":         &types.AttributeValueMemberN{Value: "1"},
			":now":         nowAV,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	session.Status = models.SessionInProgress
	session.Progress = tracking
	session.Version++
	session.UpdatedAt = now
	return session, nil
}
