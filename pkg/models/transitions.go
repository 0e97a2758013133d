package models

// sessionTransitions is the single source of truth for legal session status
// changes. Handlers and storage ops consult this table instead of re-deriving
// legality inline; the store additionally enforces the same precondition with
// a conditional write so concurrent callers cannot both win.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionRequested:  {SessionConfirmed, SessionRejected, SessionCanceled},
	SessionConfirmed:  {SessionInProgress, SessionCanceled},
	SessionInProgress: {SessionCompleted, SessionCanceled},
	SessionCompleted:  {},
	SessionCanceled:   {},
	SessionRejected:   {},
}

// CanTransition reports whether a session may move from one status to another.
func CanTransition(from, to SessionStatus) bool {
	for _, next := range sessionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a session status admits no further transitions.
func IsTerminal(s SessionStatus) bool {
	return len(sessionTransitions[s]) == 0
}

// IsTerminalTransaction reports whether an escrow transaction has been
// resolved (released or refunded).
func IsTerminalTransaction(s TransactionStatus) bool {
	return s == TransactionCompleted || s == TransactionFailed
}
