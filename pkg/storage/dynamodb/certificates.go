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
	recipientCertificatesGSI = "recipient-index"
	pendingCertificatesGSI   = "status-created_at-index"
)

// GetCertificate retrieves a certificate by its ID.
func (s *Store) GetCertificate(ctx context.Context, certificateID string) (*models.Certificate, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": certificateID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal certificate ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Certificates),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("certificate %s: %w", certificateID, storage.ErrNotFound)
	}

	var cert models.Certificate
	if err := attributevalue.UnmarshalMap(result.Item, &cert); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certificate: %w", err)
	}

	return &cert, nil
}

// ListCertificatesByRecipient retrieves all certificates earned by a user.
func (s *Store) ListCertificatesByRecipient(ctx context.Context, walletAddress string) ([]models.Certificate, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Certificates),
		IndexName:              aws.String(recipientCertificatesGSI),
		KeyConditionExpression: aws.String("recipient = :recipient"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":recipient": &types.AttributeValueMemberS{Value: walletAddress},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificates by recipient: %w", err)
	}

	var certs []models.Certificate
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &certs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certificates: %w", err)
	}

	return certs, nil
}

// ApplyMintResult moves a pending certificate to minted and records the
// on-chain references. The conditional write on pending status makes a
// redelivered mint result apply at most once.
func (s *Store) ApplyMintResult(ctx context.Context, certificateID string, result storage.MintResult) error {
	now, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Certificates),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: certificateID},
		},
		UpdateExpression:    aws.String("SET #status = :minted, token_id = :token_id, tx_hash = :tx_hash, metadata_uri = :metadata_uri, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":minted":       &types.AttributeValueMemberS{Value: string(models.CertificateMinted)},
			":pending":      &types.AttributeValueMemberS{Value: string(models.CertificatePending)},
			":token_id":     &types.AttributeValueMemberS{Value: result.TokenId},
			":tx_hash":      &types.AttributeValueMemberS{Value: result.TxHash},
			":metadata_uri": &types.AttributeValueMemberS{Value: result.MetadataUri},
			":now":          now,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrCertificateNotPending
		}
		return fmt.Errorf("failed to apply mint result: %w", err)
	}

	return nil
}

// MarkCertificateFailed moves a pending certificate to failed.
func (s *Store) MarkCertificateFailed(ctx context.Context, certificateID string) error {
	now, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Certificates),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: certificateID},
		},
		UpdateExpression:    aws.String("SET #status = :failed, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":failed":  &types.AttributeValueMemberS{Value: string(models.CertificateFailed)},
			":pending": &types.AttributeValueMemberS{Value: string(models.CertificatePending)},
			":now":     now,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrCertificateNotPending
		}
		return fmt.Errorf("failed to mark certificate failed: %w", err)
	}

	return nil
}

// GetStalePendingCertificates retrieves certificates that have been pending
// for longer than maxAge, for re-enqueueing by the reconciliation worker.
func (s *Store) GetStalePendingCertificates(ctx context.Context, maxAge time.Duration) ([]models.Certificate, error) {
	cutoff := time.Now().Add(-maxAge)
	cutoffStr, err := cutoff.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Certificates),
		IndexName:              aws.String(pendingCertificatesGSI),
		KeyConditionExpression: aws.String("#status = :status"),
		FilterExpression:       aws.String("created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.CertificatePending)},
			":cutoff": &types.AttributeValueMemberS{Value: string(cutoffStr)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale pending certificates: %w", err)
	}

	var certs []models.Certificate
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &certs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certificates: %w", err)
	}

	return certs, nil
}
