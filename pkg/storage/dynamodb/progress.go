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

// UpdateMilestone toggles one milestone of an in-progress session and writes
// back the recomputed progress record. The derived fields are rebuilt from
// the milestone set here; nothing from the caller is trusted beyond the
// toggle itself.
func (s *Store) UpdateMilestone(ctx context.Context, sessionID, actor, milestoneID string, completed bool, notes string) (*models.Session, error) {
	return s.mutateProgress(ctx, sessionID, actor, func(p *models.ProgressTracking, now time.Time) error {
		if !progress.ApplyMilestone(p, milestoneID, completed, notes, now) {
			return fmt.Errorf("milestone %s: %w", milestoneID, storage.ErrNotFound)
		}
		return nil
	})
}

// UpdateMeetingData records meeting participation for an in-progress
// session and rederives attendance verification.
func (s *Store) UpdateMeetingData(ctx context.Context, sessionID, actor string, participants, attendanceRate, durationMinutes int32, recordingURL string) (*models.Session, error) {
	return s.mutateProgress(ctx, sessionID, actor, func(p *models.ProgressTracking, now time.Time) error {
		progress.ApplyMeetingData(p, participants, attendanceRate, durationMinutes, recordingURL)
		return nil
	})
}

// mutateProgress applies one mutation to the progress record of an
// in-progress session. The write replaces the whole progress map guarded by
// the session's status and version, so concurrent updates serialize through
// the optimistic lock instead of losing each other's writes.
func (s *Store) mutateProgress(ctx context.Context, sessionID, actor string, mutate func(*models.ProgressTracking, time.Time) error) (*models.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsParticipant(actor) {
		return nil, storage.ErrUnauthorized
	}
	if session.Status != models.SessionInProgress || session.Progress == nil {
		return nil, storage.ErrInvalidTransition
	}

	now := time.Now()
	if err := mutate(session.Progress, now); err != nil {
		return nil, err
	}

	progressAV, err := attributevalue.Marshal(session.Progress)
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
		UpdateExpression:    aws.String("SET progress = :progress, version = version + :inc, updated_at = :now"),
		ConditionExpression: aws.String("#status = :in_progress AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":progress":    progressAV,
			":in_progress": &types.AttributeValueMemberS{Value: string(models.SessionInProgress)},
			":version":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", session.Version)},
			":inc":         &types.AttributeValueMemberN{Value: "1"},
			":now":         nowAV,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	session.Version++
	session.UpdatedAt = now
	return session, nil
}
