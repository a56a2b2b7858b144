package common

// Job statuses.
const (
	JobDraft      = "draft"
	JobOpen       = "open"
	JobRFQ        = "rfq"
	JobAssigned   = "assigned"
	JobInProgress = "in_progress"
	JobCompleted  = "completed"
	JobCanceled   = "canceled"
)

// Quote statuses.
const (
	QuotePending   = "pending"
	QuoteAccepted  = "accepted"
	QuoteRejected  = "rejected"
	QuoteWithdrawn = "withdrawn"
	QuoteExpired   = "expired"
)

// Assignment statuses.
const (
	AssignmentPending   = "pending"
	AssignmentAccepted  = "accepted"
	AssignmentStarted   = "started"
	AssignmentCompleted = "completed"
	AssignmentCanceled  = "canceled"
)

// Janitor statuses.
const (
	JanitorPendingVerification = "pending_verification"
	JanitorActive              = "active"
	JanitorInactive            = "inactive"
	JanitorSuspended           = "suspended"
)

// JobAcceptsQuotes reports whether workers may submit offers against the job.
func JobAcceptsQuotes(status string) bool {
	return status == JobOpen || status == JobRFQ
}

// JobAllowsRFQ reports whether the tenant may still solicit quotes.
func JobAllowsRFQ(status string) bool {
	return status == JobDraft || status == JobOpen || status == JobRFQ
}

// JobTerminal reports whether the job status admits no further transitions.
func JobTerminal(status string) bool {
	return status == JobCompleted || status == JobCanceled
}

// JobFieldsFrozen reports whether schedule and budget may no longer change.
func JobFieldsFrozen(status string) bool {
	return status == JobAssigned || status == JobInProgress
}

// assignment status graph: pending -> accepted -> started -> completed,
// canceled reachable from every non-terminal state.
var assignmentNext = map[string]map[string]bool{
	AssignmentPending:  {AssignmentAccepted: true, AssignmentCanceled: true},
	AssignmentAccepted: {AssignmentStarted: true, AssignmentCanceled: true},
	AssignmentStarted:  {AssignmentCompleted: true, AssignmentCanceled: true},
}

// AssignmentCanTransition reports whether the assignment status graph permits
// moving from one status to another.
func AssignmentCanTransition(from, to string) bool {
	return assignmentNext[from][to]
}

// AssignmentTerminal reports whether the assignment status admits no further
// transitions.
func AssignmentTerminal(status string) bool {
	return status == AssignmentCompleted || status == AssignmentCanceled
}
