package service

import "errors"

// Not-found errors. A row owned by another tenant reports the same error as a
// missing row on purpose.
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrJanitorNotFound     = errors.New("janitor not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrMessageNotFound     = errors.New("message not found")
)

// Validation errors: the input itself is malformed.
var (
	ErrInvalidSchedule   = errors.New("end time must be after start time")
	ErrNoQuoteRecipients = errors.New("provide worker ids or set broadcast")
	ErrNegativeAmount    = errors.New("amount must be a positive number of cents")
	ErrInvalidHours      = errors.New("reported hours must be positive")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// Invalid-state errors: the entity exists but its status does not permit the
// operation.
var (
	ErrJobNotAcceptingQuotes       = errors.New("job is not accepting quotes")
	ErrBiddingClosed               = errors.New("bidding period has ended")
	ErrJobLocked                   = errors.New("schedule and budget cannot change after assignment")
	ErrJobClosed                   = errors.New("completed and canceled jobs cannot change")
	ErrJobNotDeletable             = errors.New("only draft jobs can be deleted")
	ErrJobNotAvailableForRFQ       = errors.New("job is not available for requesting quotes")
	ErrQuoteNotPending             = errors.New("quote has already been resolved")
	ErrInvalidAssignmentTransition = errors.New("assignment is not in an eligible status for this transition")
	ErrAssignmentNotCompleted      = errors.New("assignment must be completed first")
)

// Conflict errors: a concurrent or earlier operation already resolved the
// decision.
var (
	ErrQuoteAlreadyAccepted     = errors.New("another quote has already been accepted for this job")
	ErrDuplicateQuote           = errors.New("worker already has a quote on this job")
	ErrJobHasQuotes             = errors.New("job has received quotes and can only be canceled")
	ErrJanitorAlreadyRegistered = errors.New("a janitor profile already exists for this user")
)

var notFoundErrors = []error{
	ErrJobNotFound, ErrQuoteNotFound, ErrAssignmentNotFound, ErrJanitorNotFound,
	ErrTransactionNotFound, ErrMessageNotFound,
}

var validationErrors = []error{
	ErrInvalidSchedule, ErrNoQuoteRecipients, ErrNegativeAmount, ErrInvalidHours, ErrInvalidRating,
}

var invalidStateErrors = []error{
	ErrJobNotAcceptingQuotes, ErrBiddingClosed, ErrJobLocked, ErrJobClosed, ErrJobNotDeletable,
	ErrJobNotAvailableForRFQ, ErrQuoteNotPending, ErrInvalidAssignmentTransition, ErrAssignmentNotCompleted,
}

var conflictErrors = []error{
	ErrQuoteAlreadyAccepted, ErrDuplicateQuote, ErrJobHasQuotes, ErrJanitorAlreadyRegistered,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func IsNotFound(err error) bool     { return matchesAny(err, notFoundErrors) }
func IsValidation(err error) bool   { return matchesAny(err, validationErrors) }
func IsInvalidState(err error) bool { return matchesAny(err, invalidStateErrors) }
func IsConflict(err error) bool     { return matchesAny(err, conflictErrors) }
