package repo_errors

import "errors"

var (
	// ErrNotFound: the row does not exist or is not visible to the caller's
	// tenant. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("row not found")

	// ErrInvalidState: the row was found under lock but its status does not
	// permit the requested transition.
	ErrInvalidState = errors.New("entity is not in an eligible status")

	// ErrAlreadyResolved: the row already left its pending status. Only
	// returned after the caller's ownership has been verified.
	ErrAlreadyResolved = errors.New("entity has already been resolved")

	// ErrTerminalState: the row reached a terminal status and can no longer
	// change.
	ErrTerminalState = errors.New("entity is in a terminal status")

	// ErrConflict: a concurrent operation already resolved the decision
	// (another quote accepted, duplicate quote for the worker/job pair).
	ErrConflict = errors.New("operation conflicts with an existing row")

	// ErrDeadlinePassed: the job's bidding window has closed.
	ErrDeadlinePassed = errors.New("bidding deadline has passed")
)
