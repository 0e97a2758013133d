package models

import (
	"time"
)

// SessionStatus defines the possible states of a tutoring session.
type SessionStatus string

const (
	SessionRequested  SessionStatus = "requested"
	SessionConfirmed  SessionStatus = "confirmed"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCanceled   SessionStatus = "canceled"
	SessionRejected   SessionStatus = "rejected"
)

// TransactionStatus defines the possible states of an escrow transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// RequestStatus defines the possible states of a learning request.
type RequestStatus string

const (
	RequestOpen       RequestStatus = "open"
	RequestInProgress RequestStatus = "in_progress"
	RequestClosed     RequestStatus = "closed"
)

// BidStatus defines the possible states of a tutor's bid.
type BidStatus string

const (
	BidPending   BidStatus = "pending"
	BidAccepted  BidStatus = "accepted"
	BidRejected  BidStatus = "rejected"
	BidWithdrawn BidStatus = "withdrawn"
)

// CertificateStatus defines the possible states of a completion certificate.
type CertificateStatus string

const (
	CertificatePending CertificateStatus = "pending"
	CertificateMinted  CertificateStatus = "minted"
	CertificateFailed  CertificateStatus = "failed"
)

// User represents a platform user keyed by wallet address. The balance is
// mutated only through conditional updates in the storage layer.
type User struct {
	WalletAddress     string    `json:"wallet_address" dynamodbav:"wallet_address"`
	DisplayName       string    `json:"display_name" dynamodbav:"display_name"`
	Balance           int64     `json:"balance" dynamodbav:"balance"`
	Version           int64     `json:"version" dynamodbav:"version"`
	RatingTotal       int64     `json:"rating_total" dynamodbav:"rating_total"`
	RatingCount       int64     `json:"rating_count" dynamodbav:"rating_count"`
	SessionsCompleted int64     `json:"sessions_completed" dynamodbav:"sessions_completed"`
	CreatedAt         time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Rating returns the aggregate rating, or 0 before the first review.
func (u *User) Rating() float64 {
	if u.RatingCount == 0 {
		return 0
	}
	return float64(u.RatingTotal) / float64(u.RatingCount)
}

// Bid is a tutor's proposal against an open learning request. TotalCost is
// derived from the rate and duration and never accepted from a caller.
type Bid struct {
	Id              string    `dynamodbav:"id"`
	Tutor           string    `dynamodbav:"tutor"`
	RatePerHour     int64     `dynamodbav:"rate_per_hour"`
	DurationMinutes int32     `dynamodbav:"duration_minutes"`
	TotalCost       int64     `dynamodbav:"total_cost"`
	Message         string    `dynamodbav:"message,omitempty"`
	Slots           []string  `dynamodbav:"slots,omitempty"`
	Status          BidStatus `dynamodbav:"status"`
	CreatedAt       time.Time `dynamodbav:"created_at"`
	UpdatedAt       time.Time `dynamodbav:"updated_at"`
}

// LearningRequest is a learner's open call for tutors. Bids live on the
// request item so every bid transition shares the request's optimistic lock.
type LearningRequest struct {
	Id              string        `dynamodbav:"id"`
	Owner           string        `dynamodbav:"owner"`
	Skill           string        `dynamodbav:"skill"`
	MaxBudget       int64         `dynamodbav:"max_budget"`
	DurationMinutes int32         `dynamodbav:"duration_minutes"`
	Schedule        string        `dynamodbav:"schedule,omitempty"`
	Status          RequestStatus `dynamodbav:"status"`
	Bids            []Bid         `dynamodbav:"bids,omitempty"`
	Version         int64         `dynamodbav:"version"`
	CreatedAt       time.Time     `dynamodbav:"created_at"`
	UpdatedAt       time.Time     `dynamodbav:"updated_at"`
}

// FindBid returns the bid with the given id, or nil.
func (r *LearningRequest) FindBid(bidID string) *Bid {
	for i := range r.Bids {
		if r.Bids[i].Id == bidID {
			return &r.Bids[i]
		}
	}
	return nil
}

// HasPendingBidFrom reports whether the tutor already has a pending bid.
func (r *LearningRequest) HasPendingBidFrom(tutor string) bool {
	for i := range r.Bids {
		if r.Bids[i].Tutor == tutor && r.Bids[i].Status == BidPending {
			return true
		}
	}
	return false
}

// Milestone is a discrete progress checkpoint within a session.
type Milestone struct {
	Id           string     `dynamodbav:"id" json:"id"`
	Title        string     `dynamodbav:"title" json:"title"`
	TargetMinute int32      `dynamodbav:"target_minute" json:"target_minute"`
	Completed    bool       `dynamodbav:"completed" json:"completed"`
	CompletedAt  *time.Time `dynamodbav:"completed_at,omitempty" json:"completed_at,omitempty"`
	Notes        string     `dynamodbav:"notes,omitempty" json:"notes,omitempty"`
}

// ProgressTracking is the nested progress sub-record of a started session.
// OverallProgress, AttendanceVerified and CanComplete are derived server-side
// and never trusted from a caller.
type ProgressTracking struct {
	Milestones         []Milestone `dynamodbav:"milestones" json:"milestones"`
	Objectives         []string    `dynamodbav:"objectives" json:"objectives"`
	OverallProgress    int32       `dynamodbav:"overall_progress" json:"overall_progress"`
	TimeSpentMinutes   int32       `dynamodbav:"time_spent_minutes" json:"time_spent_minutes"`
	AttendanceVerified bool        `dynamodbav:"attendance_verified" json:"attendance_verified"`
	CanComplete        bool        `dynamodbav:"can_complete" json:"can_complete"`
	RecordingUrl       string      `dynamodbav:"recording_url,omitempty" json:"recording_url,omitempty"`
}

// CompletedObjectives returns the titles of all completed milestones.
func (p *ProgressTracking) CompletedObjectives() []string {
	var done []string
	for _, m := range p.Milestones {
		if m.Completed {
			done = append(done, m.Title)
		}
	}
	return done
}

// Review is a participant's post-completion rating of the counterparty.
type Review struct {
	Author    string    `dynamodbav:"author" json:"author"`
	Rating    int32     `dynamodbav:"rating" json:"rating"`
	Comment   string    `dynamodbav:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`
}

// Session represents one tutoring engagement and owns the escrowed amount
// for its lifetime.
type Session struct {
	Id              string            `dynamodbav:"id"`
	Tutor           string            `dynamodbav:"tutor"`
	Learner         string            `dynamodbav:"learner"`
	Skill           string            `dynamodbav:"skill"`
	TokenAmount     int64             `dynamodbav:"token_amount"`
	RatePerHour     int64             `dynamodbav:"rate_per_hour"`
	DurationMinutes int32             `dynamodbav:"duration_minutes"`
	ScheduledAt     *time.Time        `dynamodbav:"scheduled_at,omitempty"`
	MeetingLink     string            `dynamodbav:"meeting_link,omitempty"`
	RejectReason    string            `dynamodbav:"reject_reason,omitempty"`
	Status          SessionStatus     `dynamodbav:"status"`
	TransactionId   string            `dynamodbav:"transaction_id"`
	Progress        *ProgressTracking `dynamodbav:"progress,omitempty"`
	Reviews         []Review          `dynamodbav:"reviews,omitempty"`
	Version         int64             `dynamodbav:"version"`
	CreatedAt       time.Time         `dynamodbav:"created_at"`
	UpdatedAt       time.Time         `dynamodbav:"updated_at"`
}

// IsParticipant reports whether the actor is the session's tutor or learner.
func (s *Session) IsParticipant(actor string) bool {
	return actor == s.Tutor || actor == s.Learner
}

// HasReviewFrom reports whether the actor already reviewed this session.
func (s *Session) HasReviewFrom(author string) bool {
	for _, rv := range s.Reviews {
		if rv.Author == author {
			return true
		}
	}
	return false
}

// TokenTransaction records one escrow movement per session. It transitions
// away from pending exactly once.
type TokenTransaction struct {
	Id        string            `dynamodbav:"id"`
	SessionId string            `dynamodbav:"session_id"`
	From      string            `dynamodbav:"from"`
	To        string            `dynamodbav:"to"`
	Amount    int64             `dynamodbav:"amount"`
	Status    TransactionStatus `dynamodbav:"status"`
	CreatedAt time.Time         `dynamodbav:"created_at"`
	UpdatedAt time.Time         `dynamodbav:"updated_at"`
}

// Certificate is the completion record for a session, eligible for external
// minting while pending.
type Certificate struct {
	Id                  string            `dynamodbav:"id"`
	SessionId           string            `dynamodbav:"session_id"`
	Recipient           string            `dynamodbav:"recipient"`
	Issuer              string            `dynamodbav:"issuer"`
	Skill               string            `dynamodbav:"skill"`
	ProgressAchieved    int32             `dynamodbav:"progress_achieved"`
	ObjectivesCompleted []string          `dynamodbav:"objectives_completed,omitempty"`
	DurationMinutes     int32             `dynamodbav:"duration_minutes"`
	Status              CertificateStatus `dynamodbav:"status"`
	TokenId             string            `dynamodbav:"token_id,omitempty"`
	TxHash              string            `dynamodbav:"tx_hash,omitempty"`
	MetadataUri         string            `dynamodbav:"metadata_uri,omitempty"`
	CreatedAt           time.Time         `dynamodbav:"created_at"`
	UpdatedAt           time.Time         `dynamodbav:"updated_at"`
}

// LedgerEntry represents a single entry in the double-entry ledger.
type LedgerEntry struct {
	EntryID       string    `dynamodbav:"entry_id"`
	TransactionID string    `dynamodbav:"transaction_id"`
	AccountID     string    `dynamodbav:"account_id"`
	Debit         int64     `dynamodbav:"debit,omitempty"`
	Credit        int64     `dynamodbav:"credit,omitempty"`
	Description   string    `dynamodbav:"description"`
	Timestamp     time.Time `dynamodbav:"timestamp"`
	GSI1PK        string    `dynamodbav:"gsi1pk"`
}

// BidTotalCost derives the escrow amount for a rate and duration.
// Partial hours round down to whole tokens.
func BidTotalCost(ratePerHour int64, durationMinutes int32) int64 {
	return ratePerHour * int64(durationMinutes) / 60
}
