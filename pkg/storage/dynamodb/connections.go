package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const connectionsByUserGSI = "wallet_address-index"

type connectionRecord struct {
	ConnectionID  string `dynamodbav:"connection_id"`
	WalletAddress string `dynamodbav:"wallet_address"`
}

// AddConnection records a user's live WebSocket connection.
func (s *Store) AddConnection(ctx context.Context, walletAddress, connectionID string) error {
	item, err := attributevalue.MarshalMap(connectionRecord{
		ConnectionID:  connectionID,
		WalletAddress: walletAddress,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.Connections),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store connection: %w", err)
	}

	return nil
}

// RemoveConnection deletes a WebSocket connection record.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"connection_id": connectionID})
	if err != nil {
		return fmt.Errorf("failed to marshal connection ID: %w", err)
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.Tables.Connections),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}

	return nil
}

// GetConnectionsForUser retrieves all live connection ids for a user.
func (s *Store) GetConnectionsForUser(ctx context.Context, walletAddress string) ([]string, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Connections),
		IndexName:              aws.String(connectionsByUserGSI),
		KeyConditionExpression: aws.String("wallet_address = :wallet"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":wallet": &types.AttributeValueMemberS{Value: walletAddress},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}

	var records []connectionRecord
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ConnectionID
	}
	return ids, nil
}
