package dynamodb

import (
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/skillswap/skill-exchange/pkg/models"
)

// escrowAccountID is the ledger account holding tokens between booking and
// resolution. Every escrow movement is recorded as a debit/credit pair so
// the ledger always balances.
const escrowAccountID = "escrow"

// ledgerPuts builds the pair of double-entry ledger writes for one token
// movement from one account to another.
func (s *Store) ledgerPuts(transactionID, from, to string, amount int64, description string, now time.Time) ([]types.TransactWriteItem, error) {
	debitEntry := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: transactionID,
		AccountID:     from,
		Debit:         amount,
		Description:   description,
		Timestamp:     now,
		GSI1PK:        "LEDGER_ENTRIES",
	}
	creditEntry := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: transactionID,
		AccountID:     to,
		Credit:        amount,
		Description:   description,
		Timestamp:     now,
		GSI1PK:        "LEDGER_ENTRIES",
	}

	debitAV, err := attributevalue.MarshalMap(debitEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal debit entry: %w", err)
	}
	creditAV, err := attributevalue.MarshalMap(creditEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credit entry: %w", err)
	}

	return []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Ledger),
				Item:                debitAV,
				ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
			},
		},
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Ledger),
				Item:                creditAV,
				ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
			},
		},
	}, nil
}

// conditionFailedAt reports whether a TransactWriteItems error was caused by
// the conditional check of the item at the given index.
func conditionFailedAt(err error, index int) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	if index >= len(tce.CancellationReasons) {
		return false
	}
	code := tce.CancellationReasons[index].Code
	return code != nil && *code == "ConditionalCheckFailed"
}
