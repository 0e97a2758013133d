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

// AcceptBid accepts one pending bid on behalf of the request owner. In a
// single store transaction it debits the learner, creates a confirmed
// session with a pending escrow transaction, marks the accepted bid, rejects
// every sibling pending bid and flips the request to in_progress. The
// request write is guarded on its open status and version, so two
// concurrent accepts cannot both succeed and an accepted request can never
// accept again.
//
// Bid-born sessions enter at confirmed rather than requested: the tutor
// placing the bid is the approval.
func (s *Store) AcceptBid(ctx context.Context, requestID, bidID, actor string) (*models.Session, error) {
	req, err := s.GetLearningRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if actor != req.Owner {
		return nil, storage.ErrUnauthorized
	}
	if req.Status != models.RequestOpen {
		return nil, storage.ErrRequestNotOpen
	}

	bid := req.FindBid(bidID)
	if bid == nil {
		return nil, fmt.Errorf("bid %s: %w", bidID, storage.ErrNotFound)
	}
	if bid.Status != models.BidPending {
		return nil, storage.ErrBidNotPending
	}

	learner, err := s.GetUser(ctx, req.Owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get learner: %w", err)
	}
	if learner.Balance < bid.TotalCost {
		return nil, storage.ErrInsufficientBalance
	}

	now := time.Now()

	// Resolve the whole bid list in memory: the winner is accepted, every
	// other pending sibling is rejected.
	for i := range req.Bids {
		switch {
		case req.Bids[i].Id == bidID:
			req.Bids[i].Status = models.BidAccepted
			req.Bids[i].UpdatedAt = now
		case req.Bids[i].Status == models.BidPending:
			req.Bids[i].Status = models.BidRejected
			req.Bids[i].UpdatedAt = now
		}
	}

	session := &models.Session{
		Id:              uuid.New().String(),
		Tutor:           bid.Tutor,
		Learner:         req.Owner,
		Skill:           req.Skill,
		TokenAmount:     bid.TotalCost,
		RatePerHour:     bid.RatePerHour,
		DurationMinutes: bid.DurationMinutes,
		Status:          models.SessionConfirmed,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	tx := &models.TokenTransaction{
		Id:        uuid.New().String(),
		SessionId: session.Id,
		From:      req.Owner,
		To:        bid.Tutor,
		Amount:    bid.TotalCost,
		Status:    models.TransactionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	session.TransactionId = tx.Id

	slog.Log(ctx, slog.LevelDebug, "accepting bid", "request_id", requestID, "bid_id", bidID, "session_id", session.Id)

	sessionAV, err := attributevalue.MarshalMap(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	bidsAV, err := attributevalue.Marshal(req.Bids)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bids: %w", err)
	}
	amountAV, err := attributevalue.Marshal(bid.TotalCost)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amount: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: debit the learner.
			Update: &types.Update{
				TableName: aws.String(s.Tables.Users),
				Key: map[string]types.AttributeValue{
					"wallet_address": &types.AttributeValueMemberS{Value: req.Owner},
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
			// Operation 2: resolve all bids and close the request to bidding.
			Update: &types.Update{
				TableName: aws.String(s.Tables.Requests),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: requestID},
				},
				UpdateExpression:    aws.String("SET bids = :bids, #status = :in_progress, version = version + :inc, updated_at = :now"),
				ConditionExpression: aws.String("#status = :open AND version = :req_version"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":bids":        bidsAV,
					":in_progress": &types.AttributeValueMemberS{Value: string(models.RequestInProgress)},
					":open":        &types.AttributeValueMemberS{Value: string(models.RequestOpen)},
					":req_version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", req.Version)},
					":inc":         &types.AttributeValueMemberN{Value: "1"},
					":now":         nowAV,
				},
			},
		},
		{
			// Operation 3: create the confirmed session.
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Sessions),
				Item:                sessionAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
		{
			// Operation 4: create the pending escrow transaction.
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Transactions),
				Item:                txAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
	}

	ledgerItems, err := s.ledgerPuts(tx.Id, req.Owner, escrowAccountID, bid.TotalCost,
		fmt.Sprintf("Escrow reserve for accepted bid %s", bidID), now)
	if err != nil {
		return nil, err
	}
	items = append(items, ledgerItems...)

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return nil, storage.ErrInsufficientBalance
		}
		if conditionFailedAt(err, 1) {
			return nil, storage.ErrRequestNotOpen
		}
		return nil, fmt.Errorf("failed to execute bid acceptance: %w", err)
	}

	return session, nil
}
