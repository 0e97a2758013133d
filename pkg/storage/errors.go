package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a user, request, session, transaction or
// certificate does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned when the actor is not permitted to perform the
// requested transition. The message deliberately does not disclose who the
// correct actor would be.
var ErrUnauthorized = errors.New("actor not permitted")

// ErrGuardViolation is the parent of every state-machine precondition
// failure. Specific guards wrap it so handlers can classify with errors.Is
// while still surfacing the concrete reason.
var ErrGuardViolation = errors.New("guard violation")

var (
	// ErrInsufficientBalance is returned when a learner's balance cannot cover
	// the escrow amount.
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", ErrGuardViolation)

	// ErrRequestNotOpen is returned when a bid is submitted against a request
	// that is no longer open.
	ErrRequestNotOpen = fmt.Errorf("%w: learning request is not open", ErrGuardViolation)

	// ErrDuplicateBid is returned when a tutor already has a pending bid on
	// the same request.
	ErrDuplicateBid = fmt.Errorf("%w: tutor already has a pending bid on this request", ErrGuardViolation)

	// ErrBidOverBudget is returned when a bid's total cost exceeds the
	// request's maximum budget.
	ErrBidOverBudget = fmt.Errorf("%w: bid exceeds the request budget", ErrGuardViolation)

	// ErrBidNotPending is returned when accepting, rejecting or withdrawing a
	// bid that has already been resolved.
	ErrBidNotPending = fmt.Errorf("%w: bid is not pending", ErrGuardViolation)

	// ErrInvalidTransition is returned when a session status change is not
	// permitted from the current status.
	ErrInvalidTransition = fmt.Errorf("%w: transition not allowed from current status", ErrGuardViolation)

	// ErrCompletionRequirements is returned when completion is attempted
	// before progress, attendance and time-spent gates are all met.
	ErrCompletionRequirements = fmt.Errorf("%w: completion requirements not met", ErrGuardViolation)

	// ErrSessionNotCompleted is returned when a review is submitted for a
	// session that has not completed.
	ErrSessionNotCompleted = fmt.Errorf("%w: session is not completed", ErrGuardViolation)

	// ErrAlreadyReviewed is returned when the actor has already reviewed the
	// session.
	ErrAlreadyReviewed = fmt.Errorf("%w: session already reviewed by this actor", ErrGuardViolation)

	// ErrCertificateNotPending is returned when a mint result is applied to a
	// certificate that has already been minted or failed.
	ErrCertificateNotPending = fmt.Errorf("%w: certificate is not pending", ErrGuardViolation)
)
