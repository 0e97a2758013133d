package storage

import (
	"context"

	"github.com/skillswap/skill-exchange/pkg/models"
)

// SessionReader defines the interface for reading session data.
type SessionReader interface {
	// GetSession retrieves a session by its ID.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// ListSessionsByUser retrieves all sessions in which the user is either
	// tutor or learner.
	ListSessionsByUser(ctx context.Context, walletAddress string) ([]models.Session, error)
}

// SessionManager defines the interface for driving the session state
// machine. Every transition is enforced twice: against the transition table
// before any write, and by a conditional expression on the current status
// inside the write itself, so concurrent or retried calls cannot apply a
// transition more than once.
type SessionManager interface {
	// BookSession atomically debits the learner by the session's token
	// amount, creates the session in requested status and records a pending
	// escrow transaction.
	BookSession(ctx context.Context, session *models.Session) (*models.Session, error)

	// ApproveSession moves a requested session to confirmed. Tutor only.
	ApproveSession(ctx context.Context, sessionID, actor, meetingLink string) (*models.Session, error)

	// RejectSession moves a requested session to rejected, refunds the
	// learner and fails the escrow transaction. Tutor only, reason required.
	RejectSession(ctx context.Context, sessionID, actor, reason string) (*models.Session, error)

	// CancelSession moves a confirmed or in-progress session to canceled,
	// refunds the learner and fails the escrow transaction. Either
	// participant may cancel; the refund always goes to the learner.
	CancelSession(ctx context.Context, sessionID, actor string) (*models.Session, error)

	// StartSession moves a confirmed session to in-progress and initializes
	// its progress record. Tutor only.
	StartSession(ctx context.Context, sessionID, actor string) (*models.Session, error)

	// CompleteSession moves an in-progress session to completed, credits the
	// tutor, completes the escrow transaction, increments the tutor's
	// completed-session count and creates a pending certificate. Tutor only;
	// progress, attendance and time-spent gates must all be met.
	CompleteSession(ctx context.Context, sessionID, actor string) (*models.Session, *models.Certificate, error)

	// SubmitReview appends a participant's review of a completed session and
	// folds the rating into the counterparty's aggregate.
	SubmitReview(ctx context.Context, sessionID, actor string, rating int32, comment string) (*models.Session, error)
}

// ProgressManager defines the interface for the progress sub-record of an
// in-progress session. Derived fields are recomputed server-side on every
// update.
type ProgressManager interface {
	// UpdateMilestone toggles one milestone and recomputes derived progress.
	UpdateMilestone(ctx context.Context, sessionID, actor, milestoneID string, completed bool, notes string) (*models.Session, error)

	// UpdateMeetingData records meeting attendance and duration.
	UpdateMeetingData(ctx context.Context, sessionID, actor string, participants, attendanceRate, durationMinutes int32, recordingURL string) (*models.Session, error)
}

// SessionStore combines the session interfaces.
type SessionStore interface {
	SessionReader
	SessionManager
	ProgressManager
}
