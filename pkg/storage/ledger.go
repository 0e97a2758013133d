package storage

import (
	"context"

	"github.com/skillswap/skill-exchange/pkg/models"
)

// LedgerReader defines the interface for reading the double-entry ledger.
type LedgerReader interface {
	// ListLedgerEntries retrieves the most recent ledger entries.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)
}

// TransactionReader defines the interface for reading escrow transactions.
type TransactionReader interface {
	// GetTransaction retrieves an escrow transaction by its ID.
	GetTransaction(ctx context.Context, transactionID string) (*models.TokenTransaction, error)
}
