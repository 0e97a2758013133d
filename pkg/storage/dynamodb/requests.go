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
	"github.com/google/uuid"

	"github.com/skillswap/skill-exchange/pkg/models"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

const openRequestsGSI = "status-created_at-index"

// CreateLearningRequest creates a new open learning request.
func (s *Store) CreateLearningRequest(ctx context.Context, req *models.LearningRequest) (*models.LearningRequest, error) {
	now := time.Now()
	req.Id = uuid.New().String()
	req.Status = models.RequestOpen
	req.Bids = nil
	req.Version = 1
	req.CreatedAt = now
	req.UpdatedAt = now

	reqAV, err := attributevalue.MarshalMap(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal learning request: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Requests),
		Item:                reqAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to create learning request in DynamoDB: %w", err)
	}

	return req, nil
}

// GetLearningRequest retrieves a learning request by its ID.
func (s *Store) GetLearningRequest(ctx context.Context, requestID string) (*models.LearningRequest, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": requestID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Requests),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get learning request from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("learning request %s: %w", requestID, storage.ErrNotFound)
	}

	var req models.LearningRequest
	if err := attributevalue.UnmarshalMap(result.Item, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal learning request: %w", err)
	}

	return &req, nil
}

// ListOpenRequests retrieves all requests still accepting bids.
func (s *Store) ListOpenRequests(ctx context.Context) ([]models.LearningRequest, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Requests),
		IndexName:              aws.String(openRequestsGSI),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.RequestOpen)},
		},
		ScanIndexForward: aws.Bool(false),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query open requests: %w", err)
	}

	var requests []models.LearningRequest
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal learning requests: %w", err)
	}

	return requests, nil
}

// SubmitBid appends a pending bid to an open request. The guards run against
// a fresh read and are enforced again by the conditional write on the
// request's status and version, so two racing submissions cannot both win
// the same version.
func (s *Store) SubmitBid(ctx context.Context, requestID string, bid *models.Bid) (*models.LearningRequest, error) {
	req, err := s.GetLearningRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.Status != models.RequestOpen {
		return nil, storage.ErrRequestNotOpen
	}
	if req.HasPendingBidFrom(bid.Tutor) {
		return nil, storage.ErrDuplicateBid
	}

	now := time.Now()
	bid.Id = uuid.New().String()
	bid.TotalCost = models.BidTotalCost(bid.RatePerHour, bid.DurationMinutes)
	bid.Status = models.BidPending
	bid.CreatedAt = now
	bid.UpdatedAt = now

	if bid.TotalCost > req.MaxBudget {
		return nil, storage.ErrBidOverBudget
	}

	bidAV, err := attributevalue.Marshal(bid)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bid: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Requests),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: requestID},
		},
		UpdateExpression:    aws.String("SET bids = list_append(if_not_exists(bids, :empty), :bid), version = version + :inc, updated_at = :now"),
		ConditionExpression: aws.String("#status = :open AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid":     &types.AttributeValueMemberL{Value: []types.AttributeValue{bidAV}},
			":empty":   &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":open":    &types.AttributeValueMemberS{Value: string(models.RequestOpen)},
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", req.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
			":now":     nowAV,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrRequestNotOpen
		}
		return nil, fmt.Errorf("failed to append bid: %w", err)
	}

	req.Bids = append(req.Bids, *bid)
	req.Version++
	req.UpdatedAt = now
	return req, nil
}

// RejectBid rejects one pending bid without touching the ledger or the
// request status.
func (s *Store) RejectBid(ctx context.Context, requestID, bidID, actor string) error {
	return s.resolveSingleBid(ctx, requestID, bidID, actor, models.BidRejected)
}

// WithdrawBid withdraws the tutor's own pending bid.
func (s *Store) WithdrawBid(ctx context.Context, requestID, bidID, actor string) error {
	return s.resolveSingleBid(ctx, requestID, bidID, actor, models.BidWithdrawn)
}

// resolveSingleBid flips one pending bid to rejected or withdrawn. The write
// replaces the whole bids list guarded by the request version, so a
// concurrent accept or second resolve loses the race cleanly.
func (s *Store) resolveSingleBid(ctx context.Context, requestID, bidID, actor string, to models.BidStatus) error {
	req, err := s.GetLearningRequest(ctx, requestID)
	if err != nil {
		return err
	}

	bid := req.FindBid(bidID)
	if bid == nil {
		return fmt.Errorf("bid %s: %w", bidID, storage.ErrNotFound)
	}

	switch to {
	case models.BidRejected:
		if actor != req.Owner {
			return storage.ErrUnauthorized
		}
	case models.BidWithdrawn:
		if actor != bid.Tutor {
			return storage.ErrUnauthorized
		}
	}

	if bid.Status != models.BidPending {
		return storage.ErrBidNotPending
	}

	now := time.Now()
	bid.Status = to
	bid.UpdatedAt = now

	bidsAV, err := attributevalue.Marshal(req.Bids)
	if err != nil {
		return fmt.Errorf("failed to marshal bids: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Requests),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: requestID},
		},
		UpdateExpression:    aws.String("SET bids = :bids, version = version + :inc, updated_at = :now"),
		ConditionExpression: aws.String("version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bids":    bidsAV,
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", req.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
			":now":     nowAV,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrBidNotPending
		}
		return fmt.Errorf("failed to update bid: %w", err)
	}

	return nil
}
