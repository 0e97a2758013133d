package dynamodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/skillswap/skill-exchange/pkg/models"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// BookSession atomically debits the learner by the session's token amount,
// creates the session in requested status and records the pending escrow
// transaction. The learner's balance check and decrement are one conditional
// operation, so simultaneous bookings cannot overdraw.
func (s *Store) BookSession(ctx context.Context, session *models.Session) (*models.Session, error) {
	learner, err := s.GetUser(ctx, session.Learner)
	if err != nil {
		return nil, fmt.Errorf("failed to get learner: %w", err)
	}
	if _, err := s.GetUser(ctx, session.Tutor); err != nil {
		return nil, fmt.Errorf("failed to get tutor: %w", err)
	}

	now := time.Now()
	session.Id = uuid.New().String()
	session.TokenAmount = models.BidTotalCost(session.RatePerHour, session.DurationMinutes)
	session.Status = models.SessionRequested
	session.Progress = nil
	session.Version = 1
	session.CreatedAt = now
	session.UpdatedAt = now

	tx := &models.TokenTransaction{
		Id:        uuid.New().String(),
		SessionId: session.Id,
		From:      session.Learner,
		To:        session.Tutor,
		Amount:    session.TokenAmount,
		Status:    models.TransactionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	session.TransactionId = tx.Id

	slog.Log(ctx, slog.LevelDebug, "booking session", "session_id", session.Id, "learner", session.Learner, "amount", session.TokenAmount)

	sessionAV, err := attributevalue.MarshalMap(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	amountAV, err := attributevalue.Marshal(session.TokenAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amount: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: debit the learner, guarded on balance and version.
			Update: &types.Update{
				TableName: aws.String(s.Tables.Users),
				Key: map[string]types.AttributeValue{
					"wallet_address": &types.AttributeValueMemberS{Value: session.Learner},
				},
				UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc"),
				ConditionExpression: aws.String("balance >= :amount AND version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":amount":  amountAV,
					":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", learner.Version)},
					":inc":     &types.AttributeValueMemberN{Value: "1"},
				},
			},
		},
		{
			// Operation 2: create the session record.
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Sessions),
				Item:                sessionAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
		{
			// Operation 3: create the pending escrow transaction.
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Transactions),
				Item:                txAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
	}

	ledgerItems, err := s.ledgerPuts(tx.Id, session.Learner, escrowAccountID, session.TokenAmount,
		fmt.Sprintf("Escrow reserve for session %s", session.Id), now)
	if err != nil {
		return nil, err
	}
	items = append(items, ledgerItems...)

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return nil, storage.ErrInsufficientBalance
		}
		return nil, fmt.Errorf("failed to execute booking transaction: %w", err)
	}

	return session, nil
}
