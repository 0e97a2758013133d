package storage

import (
	"context"
	"time"

	"github.com/skillswap/skill-exchange/pkg/models"
)

// MintResult is the outcome reported by the external minting collaborator.
type MintResult struct {
	TokenId     string `json:"token_id"`
	TxHash      string `json:"tx_hash"`
	MetadataUri string `json:"metadata_uri"`
}

// CertificateReader defines the interface for reading certificates.
type CertificateReader interface {
	// GetCertificate retrieves a certificate by its ID.
	GetCertificate(ctx context.Context, certificateID string) (*models.Certificate, error)

	// ListCertificatesByRecipient retrieves all certificates earned by a user.
	ListCertificatesByRecipient(ctx context.Context, walletAddress string) ([]models.Certificate, error)
}

// CertificateMinter defines the privileged interface used by the minting
// worker. Both operations are conditional on the certificate still being
// pending, so a redelivered queue message applies at most once.
type CertificateMinter interface {
	// ApplyMintResult moves a pending certificate to minted and records the
	// on-chain references.
	ApplyMintResult(ctx context.Context, certificateID string, result MintResult) error

	// MarkCertificateFailed moves a pending certificate to failed.
	MarkCertificateFailed(ctx context.Context, certificateID string) error

	// GetStalePendingCertificates retrieves certificates that have been
	// pending for longer than maxAge, for re-enqueueing by reconciliation.
	GetStalePendingCertificates(ctx context.Context, maxAge time.Duration) ([]models.Certificate, error)
}

// CertificateStore combines the certificate interfaces.
type CertificateStore interface {
	CertificateReader
	CertificateMinter
}
