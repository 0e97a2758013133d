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

// CreateUser creates a new user record. The wallet address is the key, so a
// conditional put prevents overwriting an existing account.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.Version = 1
	user.CreatedAt = time.Now()

	userAV, err := attributevalue.MarshalMap(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Users),
		Item:                userAV,
		ConditionExpression: aws.String("attribute_not_exists(wallet_address)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("user %s already exists", user.WalletAddress)
		}
		return nil, fmt.Errorf("failed to create user in DynamoDB: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by wallet address.
func (s *Store) GetUser(ctx context.Context, walletAddress string) (*models.User, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"wallet_address": walletAddress})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet address: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Users),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get user from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("user %s: %w", walletAddress, storage.ErrNotFound)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}

// DeleteUser deletes a user record.
func (s *Store) DeleteUser(ctx context.Context, walletAddress string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"wallet_address": walletAddress})
	if err != nil {
		return fmt.Errorf("failed to marshal wallet address for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.Tables.Users),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(wallet_address)"),
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("user %s: %w", walletAddress, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to delete user from DynamoDB: %w", err)
	}

	return nil
}

// ListUsers retrieves all users.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.Tables.Users),
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan users table: %w", err)
	}

	var users []models.User
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users: %w", err)
	}

	return users, nil
}
