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
	"github.com/skillswap/skill-exchange/pkg/progress"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// CompleteSession moves an in-progress session to completed: credits the
// tutor, completes the escrow transaction, increments the tutor's
// completed-session count and creates the pending certificate, all in one
// store transaction. The session flip is conditional on in_progress and the
// transaction flip on pending, so a duplicate complete call cannot credit
// the tutor twice.
func (s *Store) CompleteSession(ctx context.Context, sessionID, actor string) (*models.Session, *models.Certificate, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if actor != session.Tutor {
		return nil, nil, storage.ErrUnauthorized
	}
	if !models.CanTransition(session.Status, models.SessionCompleted) {
		return nil, nil, storage.ErrInvalidTransition
	}
	if !progress.CompletionRequirementsMet(session.Progress, session.DurationMinutes) {
		return nil, nil, storage.ErrCompletionRequirements
	}

	tutor, err := s.GetUser(ctx, session.Tutor)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get tutor for release: %w", err)
	}

	now := time.Now()
	cert := &models.Certificate{
		Id:                  uuid.New().String(),
		SessionId:           session.Id,
		Recipient:           session.Learner,
		Issuer:              session.Tutor,
		Skill:               session.Skill,
		ProgressAchieved:    session.Progress.OverallProgress,
		ObjectivesCompleted: session.Progress.CompletedObjectives(),
		DurationMinutes:     session.DurationMinutes,
		Status:              models.CertificatePending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	slog.Log(ctx, slog.LevelDebug, "completing session", "session_id", session.Id, "tutor", session.Tutor, "amount", session.TokenAmount)

	certAV, err := attributevalue.MarshalMap(cert)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal certificate: %w", err)
	}
	amountAV, err := attributevalue.Marshal(session.TokenAmount)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal amount: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: release the escrowed amount to the tutor and count
			// the completion.
			Update: &types.Update{
				TableName: aws.String(s.Tables.Users),
				Key: map[string]types.AttributeValue{
					"wallet_address": &types.AttributeValueMemberS{Value: session.Tutor},
				},
				UpdateExpression:    aws.String("SET balance = balance + :amount, sessions_completed = sessions_completed + :inc, version = version + :inc"),
				ConditionExpression: aws.String("version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":amount":  amountAV,
					":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tutor.Version)},
					":inc":     &types.AttributeValueMemberN{Value: "1"},
				},
			},
		},
		{
			// Operation 2: flip the session to completed.
			Update: &types.Update{
				TableName: aws.String(s.Tables.Sessions),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: session.Id},
				},
				UpdateExpression:    aws.String("SET #status = :completed, version = version + :inc, updated_at = :now"),
				ConditionExpression: aws.String("#status = :in_progress"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":completed":   &types.AttributeValueMemberS{Value: string(models.SessionCompleted)},
					":in_progress": &types.AttributeValueMemberS{Value: string(models.SessionInProgress)},
					":inc":         &types.AttributeValueMemberN{Value: "1"},
					":now":         nowAV,
				},
			},
		},
		{
			// Operation 3: complete the escrow transaction.
			Update: &types.Update{
				TableName: aws.String(s.Tables.Transactions),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: session.TransactionId},
				},
				UpdateExpression:    aws.String("SET #status = :tx_completed, updated_at = :now"),
				ConditionExpression: aws.String("#status = :pending"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":tx_completed": &types.AttributeValueMemberS{Value: string(models.TransactionCompleted)},
					":pending":      &types.AttributeValueMemberS{Value: string(models.TransactionPending)},
					":now":          nowAV,
				},
			},
		},
		{
			// Operation 4: create the pending certificate.
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Certificates),
				Item:                certAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
	}

	ledgerItems, err := s.ledgerPuts(session.TransactionId, escrowAccountID, session.Tutor, session.TokenAmount,
		fmt.Sprintf("Escrow release for session %s", session.Id), now)
	if err != nil {
		return nil, nil, err
	}
	items = append(items, ledgerItems...)

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if conditionFailedAt(err, 1) || conditionFailedAt(err, 2) {
			return nil, nil, storage.ErrInvalidTransition
		}
		return nil, nil, fmt.Errorf("failed to execute completion transaction: %w", err)
	}

	// Completion is committed; enqueue the certificate for minting. An
	// enqueue failure is recovered by the reconciliation worker, never
	// rolled back.
	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleMint(ctx, cert); err != nil {
			slog.Error("certificate created but failed to enqueue for minting", "certificate_id", cert.Id, "error", err)
		}
	}

	session.Status = models.SessionCompleted
	session.Version++
	session.UpdatedAt = now
	return session, cert, nil
}
