package storage

import (
	"context"

	"github.com/skillswap/skill-exchange/pkg/models"
)

// RequestReader defines the interface for reading learning requests.
type RequestReader interface {
	// GetLearningRequest retrieves a learning request by its ID.
	GetLearningRequest(ctx context.Context, requestID string) (*models.LearningRequest, error)

	// ListOpenRequests retrieves all requests still accepting bids.
	ListOpenRequests(ctx context.Context) ([]models.LearningRequest, error)
}

// RequestManager defines the interface for the bidding workflow. AcceptBid is
// the privileged operation: it debits the learner, creates a confirmed
// session with a pending escrow transaction, rejects every sibling pending
// bid and closes the request to further bidding, all atomically.
type RequestManager interface {
	// CreateLearningRequest creates a new open learning request.
	CreateLearningRequest(ctx context.Context, req *models.LearningRequest) (*models.LearningRequest, error)

	// SubmitBid appends a pending bid to an open request. Fails if the
	// request is not open, the bid exceeds the budget, or the tutor already
	// has a pending bid.
	SubmitBid(ctx context.Context, requestID string, bid *models.Bid) (*models.LearningRequest, error)

	// AcceptBid accepts one pending bid on behalf of the request owner.
	AcceptBid(ctx context.Context, requestID, bidID, actor string) (*models.Session, error)

	// RejectBid rejects one pending bid on behalf of the request owner.
	RejectBid(ctx context.Context, requestID, bidID, actor string) error

	// WithdrawBid withdraws the tutor's own pending bid.
	WithdrawBid(ctx context.Context, requestID, bidID, actor string) error
}

// RequestStore combines the reader and manager interfaces.
type RequestStore interface {
	RequestReader
	RequestManager
}
