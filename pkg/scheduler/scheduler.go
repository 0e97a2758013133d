package scheduler

import (
	"context"

	"github.com/skillswap/skill-exchange/pkg/models"
)

// Scheduler defines the interface for a component that enqueues a freshly
// issued certificate for asynchronous minting.
type Scheduler interface {
	// ScheduleMint enqueues a certificate for the minting worker.
	ScheduleMint(ctx context.Context, cert *models.Certificate) error
}
