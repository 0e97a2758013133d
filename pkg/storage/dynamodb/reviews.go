package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/skillswap/skill-exchange/pkg/models"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// SubmitReview appends a participant's review of a completed session and
// folds the rating into the counterparty's aggregate in one store
// transaction. The session write is guarded on completed status and
// version; re-submitting finds the review already present and fails.
func (s *Store) SubmitReview(ctx context.Context, sessionID, actor string, rating int32, comment string) (*models.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsParticipant(actor) {
		return nil, storage.ErrUnauthorized
	}
	if session.Status != models.SessionCompleted {
		return nil, storage.ErrSessionNotCompleted
	}
	if session.HasReviewFrom(actor) {
		return nil, storage.ErrAlreadyReviewed
	}

	counterparty := session.Tutor
	if actor == session.Tutor {
		counterparty = session.Learner
	}
	ratedUser, err := s.GetUser(ctx, counterparty)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviewed user: %w", err)
	}

	now := time.Now()
	review := models.Review{
		Author:    actor,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}

	reviewAV, err := attributevalue.Marshal(review)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal review: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: append the review to the session.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Sessions),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: sessionID},
					},
					UpdateExpression:    aws.String("SET reviews = list_append(if_not_exists(reviews, :empty), :review), version = version + :inc, updated_at = :now"),
					ConditionExpression: aws.String("#status = :completed AND version = :version"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":review":    &types.AttributeValueMemberL{Value: []types.AttributeValue{reviewAV}},
						":empty":     &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
						":completed": &types.AttributeValueMemberS{Value: string(models.SessionCompleted)},
						":version":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", session.Version)},
						":inc":       &types.AttributeValueMemberN{Value: "1"},
						":now":       nowAV,
					},
				},
			},
			{
				// Operation 2: fold the rating into the counterparty's aggregate.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Users),
					Key: map[string]types.AttributeValue{
						"wallet_address": &types.AttributeValueMemberS{Value: counterparty},
					},
					UpdateExpression:    aws.String("SET rating_total = rating_total + :rating, rating_count = rating_count + :inc, version = version + :inc"),
					ConditionExpression: aws.String("version = :user_version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":rating":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", rating)},
						":user_version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ratedUser.Version)},
						":inc":          &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if conditionFailedAt(err, 0) {
			return nil, storage.ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to execute review transaction: %w", err)
	}

	session.Reviews = append(session.Reviews, review)
	session.Version++
	session.UpdatedAt = now
	return session, nil
}
