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

	"github.com/skillswap/skill-exchange/pkg/models"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// RejectSession moves a requested session to rejected, refunds the learner
// and fails the escrow transaction. Tutor only.
func (s *Store) RejectSession(ctx context.Context, sessionID, actor, reason string) (*models.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if actor != session.Tutor {
		return nil, storage.ErrUnauthorized
	}
	if !models.CanTransition(session.Status, models.SessionRejected) {
		return nil, storage.ErrInvalidTransition
	}

	if err := s.refundAndResolve(ctx, session, models.SessionRejected, reason); err != nil {
		return nil, err
	}

	session.Status = models.SessionRejected
	session.RejectReason = reason
	session.Version++
	return session, nil
}

// CancelSession moves a confirmed or in-progress session to canceled,
// refunds the learner and fails the escrow transaction. Either participant
// may cancel; the refund always goes to the learner in full.
func (s *Store) CancelSession(ctx context.Context, sessionID, actor string) (*models.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsParticipant(actor) {
		return nil, storage.ErrUnauthorized
	}
	// A requested session may only be canceled by the learner who booked it;
	// the tutor's exit from a requested session is reject, with a reason.
	if session.Status == models.SessionRequested && actor != session.Learner {
		return nil, storage.ErrUnauthorized
	}
	if !models.CanTransition(session.Status, models.SessionCanceled) {
		return nil, storage.ErrInvalidTransition
	}

	if err := s.refundAndResolve(ctx, session, models.SessionCanceled, ""); err != nil {
		return nil, err
	}

	session.Status = models.SessionCanceled
	session.Version++
	return session, nil
}

// refundAndResolve performs the shared terminal refund: credit the learner,
// flip the session to its terminal status and fail the escrow transaction,
// all in one store transaction. The session flip is conditional on the
// current status and the transaction flip on pending, so a retry or a
// concurrent resolution finds the precondition gone and applies nothing.
func (s *Store) refundAndResolve(ctx context.Context, session *models.Session, to models.SessionStatus, reason string) error {
	learner, err := s.GetUser(ctx, session.Learner)
	if err != nil {
		return fmt.Errorf("failed to get learner for refund: %w", err)
	}

	now := time.Now()

	slog.Log(ctx, slog.LevelDebug, "refunding session", "session_id", session.Id, "to", string(to), "amount", session.TokenAmount)

	amountAV, err := attributevalue.Marshal(session.TokenAmount)
	if err != nil {
		return fmt.Errorf("failed to marshal amount for refund: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for refund: %w", err)
	}

	sessionExpr := "SET #status = :to, version = version + :inc, updated_at = :now"
	sessionValues := map[string]types.AttributeValue{
		":to":      &types.AttributeValueMemberS{Value: string(to)},
		":current": &types.AttributeValueMemberS{Value: string(session.Status)},
		":inc":     &types.AttributeValueMemberN{Value: "1"},
		":now":     nowAV,
	}
	if reason != "" {
		sessionExpr += ", reject_reason = :reason"
		sessionValues[":reason"] = &types.AttributeValueMemberS{Value: reason}
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: credit the refund back to the learner.
			Update: &types.Update{
				TableName: aws.String(s.Tables.Users),
				Key: map[string]types.AttributeValue{
					"wallet_address": &types.AttributeValueMemberS{Value: session.Learner},
				},
				UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
				ConditionExpression: aws.String("version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":amount":  amountAV,
					":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", learner.Version)},
					":inc":     &types.AttributeValueMemberN{Value: "1"},
				},
			},
		},
		{
			// Operation 2: flip the session to its terminal status.
			Update: &types.Update{
				TableName: aws.String(s.Tables.Sessions),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: session.Id},
				},
				UpdateExpression:    aws.String(sessionExpr),
				ConditionExpression: aws.String("#status = :current"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: sessionValues,
			},
		},
		{
			// Operation 3: fail the escrow transaction.
			Update: &types.Update{
				TableName: aws.String(s.Tables.Transactions),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: session.TransactionId},
				},
				UpdateExpression:    aws.String("SET #status = :failed, updated_at = :now"),
				ConditionExpression: aws.String("#status = :pending"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":failed":  &types.AttributeValueMemberS{Value: string(models.TransactionFailed)},
					":pending": &types.AttributeValueMemberS{Value: string(models.TransactionPending)},
					":now":     nowAV,
				},
			},
		},
	}

	ledgerItems, err := s.ledgerPuts(session.TransactionId, escrowAccountID, session.Learner, session.TokenAmount,
		fmt.Sprintf("Escrow refund for session %s", session.Id), now)
	if err != nil {
		return err
	}
	items = append(items, ledgerItems...)

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if conditionFailedAt(err, 1) || conditionFailedAt(err, 2) {
			return storage.ErrInvalidTransition
		}
		return fmt.Errorf("failed to execute refund transaction: %w", err)
	}

	return nil
}
