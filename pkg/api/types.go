// Package api defines the wire models of the HTTP API. They are kept apart
// from the domain models so storage concerns (versions, lock fields, GSI
// attributes) never leak onto the wire.
package api

import (
	"time"
)

// NewUser is the request body for creating a user account.
type NewUser struct {
	WalletAddress string `json:"wallet_address"`
	DisplayName   string `json:"display_name,omitempty"`
}

// User is the API representation of a user account.
type User struct {
	WalletAddress     string  `json:"wallet_address"`
	DisplayName       string  `json:"display_name,omitempty"`
	Balance           int64   `json:"balance"`
	Rating            float64 `json:"rating"`
	RatingCount       int64   `json:"rating_count"`
	SessionsCompleted int64   `json:"sessions_completed"`
}

// NewLearningRequest is the request body for opening a learning request.
type NewLearningRequest struct {
	Skill           string `json:"skill"`
	MaxBudget       int64  `json:"max_budget"`
	DurationMinutes int32  `json:"duration_minutes"`
	Schedule        string `json:"schedule,omitempty"`
}

// LearningRequest is the API representation of a learning request with its
// bids.
type LearningRequest struct {
	Id              string    `json:"id"`
	Owner           string    `json:"owner"`
	Skill           string    `json:"skill"`
	MaxBudget       int64     `json:"max_budget"`
	DurationMinutes int32     `json:"duration_minutes"`
	Schedule        string    `json:"schedule,omitempty"`
	Status          string    `json:"status"`
	Bids            []Bid     `json:"bids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewBid is the request body for bidding on a learning request.
type NewBid struct {
	RatePerHour     int64    `json:"rate_per_hour"`
	DurationMinutes int32    `json:"duration_minutes"`
	Message         string   `json:"message,omitempty"`
	Slots           []string `json:"slots,omitempty"`
}

// Bid is the API representation of a tutor's bid.
type Bid struct {
	Id              string    `json:"id"`
	Tutor           string    `json:"tutor"`
	RatePerHour     int64     `json:"rate_per_hour"`
	DurationMinutes int32     `json:"duration_minutes"`
	TotalCost       int64     `json:"total_cost"`
	Message         string    `json:"message,omitempty"`
	Slots           []string  `json:"slots,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewSession is the request body for booking a session directly with a
// tutor.
type NewSession struct {
	Tutor           string     `json:"tutor"`
	Skill           string     `json:"skill"`
	RatePerHour     int64      `json:"rate_per_hour"`
	DurationMinutes int32      `json:"duration_minutes"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
}

// Session is the API representation of a tutoring session.
type Session struct {
	Id              string            `json:"id"`
	Tutor           string            `json:"tutor"`
	Learner         string            `json:"learner"`
	Skill           string            `json:"skill"`
	TokenAmount     int64             `json:"token_amount"`
	RatePerHour     int64             `json:"rate_per_hour"`
	DurationMinutes int32             `json:"duration_minutes"`
	ScheduledAt     *time.Time        `json:"scheduled_at,omitempty"`
	MeetingLink     string            `json:"meeting_link,omitempty"`
	RejectReason    string            `json:"reject_reason,omitempty"`
	Status          string            `json:"status"`
	TransactionId   string            `json:"transaction_id"`
	Progress        *ProgressTracking `json:"progress,omitempty"`
	Reviews         []Review          `json:"reviews,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ProgressTracking is the API representation of a session's progress record.
type ProgressTracking struct {
	Milestones         []Milestone `json:"milestones"`
	Objectives         []string    `json:"objectives"`
	OverallProgress    int32       `json:"overall_progress"`
	TimeSpentMinutes   int32       `json:"time_spent_minutes"`
	AttendanceVerified bool        `json:"attendance_verified"`
	CanComplete        bool        `json:"can_complete"`
	RecordingUrl       string      `json:"recording_url,omitempty"`
}

// Milestone is the API representation of a progress milestone.
type Milestone struct {
	Id           string     `json:"id"`
	Title        string     `json:"title"`
	TargetMinute int32      `json:"target_minute"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// ApproveSession is the request body for a tutor's approval.
type ApproveSession struct {
	MeetingLink string `json:"meeting_link,omitempty"`
}

// RejectSession is the request body for a tutor's rejection.
type RejectSession struct {
	Reason string `json:"reason"`
}

// MilestoneUpdate is the request body for toggling a milestone.
type MilestoneUpdate struct {
	MilestoneId string `json:"milestone_id"`
	Completed   bool   `json:"completed"`
	Notes       string `json:"notes,omitempty"`
}

// MeetingDataUpdate is the request body for recording meeting attendance.
type MeetingDataUpdate struct {
	Participants    int32  `json:"participants"`
	AttendanceRate  int32  `json:"attendance_rate"`
	DurationMinutes int32  `json:"duration_minutes"`
	RecordingUrl    string `json:"recording_url,omitempty"`
}

// NewReview is the request body for reviewing a completed session.
type NewReview struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// Review is the API representation of a session review.
type Review struct {
	Author    string    `json:"author"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction is the API representation of an escrow transaction.
type Transaction struct {
	Id        string    `json:"id"`
	SessionId string    `json:"session_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Certificate is the API representation of a completion certificate.
type Certificate struct {
	Id                  string    `json:"id"`
	SessionId           string    `json:"session_id"`
	Recipient           string    `json:"recipient"`
	Issuer              string    `json:"issuer"`
	Skill               string    `json:"skill"`
	ProgressAchieved    int32     `json:"progress_achieved"`
	ObjectivesCompleted []string  `json:"objectives_completed,omitempty"`
	DurationMinutes     int32     `json:"duration_minutes"`
	Status              string    `json:"status"`
	TokenId             string    `json:"token_id,omitempty"`
	TxHash              string    `json:"tx_hash,omitempty"`
	MetadataUri         string    `json:"metadata_uri,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// LedgerEntry is the API representation of a double-entry ledger record.
type LedgerEntry struct {
	EntryId       string    `json:"entry_id"`
	TransactionId string    `json:"transaction_id"`
	AccountId     string    `json:"account_id"`
	Debit         *int64    `json:"debit,omitempty"`
	Credit        *int64    `json:"credit,omitempty"`
	Description   string    `json:"description"`
	Timestamp     time.Time `json:"timestamp"`
}
