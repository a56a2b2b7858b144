package service

import (
	"context"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/realtime"
	"cleaning-marketplace-api/internal/repo"
)

type Diagnostics interface {
	PingDatabase() error
}

type Job interface {
	CreateJob(ctx context.Context, input *entity.CreateJobInput) (*entity.JobOutputModel, error)
	GetJob(ctx context.Context, orgId string, jobId string) (*entity.JobOutputModel, error)
	ListJobs(ctx context.Context, orgId string, statuses []string, search string, pg *entity.PaginationInput) ([]entity.JobOutputModel, error)
	BrowseJobs(ctx context.Context, workerId string, filter *entity.BrowseJobsInput, pg *entity.PaginationInput) ([]entity.JobOutputModel, error)
	UpdateJob(ctx context.Context, orgId string, jobId string, patch *entity.UpdateJobInput) (*entity.JobOutputModel, error)
	DeleteJob(ctx context.Context, orgId string, jobId string) error
	CancelJob(ctx context.Context, orgId string, jobId string, reason *string) (*entity.JobOutputModel, error)
	RequestQuotes(ctx context.Context, orgId string, jobId string, workerIds []string, broadcast bool) error
}

type Quote interface {
	SubmitQuote(ctx context.Context, input *entity.CreateQuoteInput) (*entity.QuoteOutputModel, error)
	ListJobQuotes(ctx context.Context, orgId string, jobId string, pg *entity.PaginationInput) ([]entity.QuoteOutputModel, error)
	ListWorkerQuotes(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.QuoteOutputModel, error)
	AcceptQuote(ctx context.Context, orgId string, quoteId string) (*entity.AssignmentOutputModel, error)
	RejectQuote(ctx context.Context, orgId string, quoteId string) error
	WithdrawQuote(ctx context.Context, workerId string, quoteId string) error
}

type Assignment interface {
	GetAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.AssignmentOutputModel, error)
	ListWorkerAssignments(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.AssignmentOutputModel, error)
	AcceptAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.AssignmentOutputModel, error)
	StartAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.AssignmentOutputModel, error)
	CompleteAssignment(ctx context.Context, workerId string, assignmentId string, reportedHours int, notes *string) (*entity.AssignmentOutputModel, error)
	CancelAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.AssignmentOutputModel, error)
	RateAssignmentByCompany(ctx context.Context, orgId string, assignmentId string, rating int) error
	RateAssignmentByWorker(ctx context.Context, workerId string, assignmentId string, rating int) error
}

type Transaction interface {
	GetAssignmentTransaction(ctx context.Context, assignmentId string) (*entity.TransactionOutputModel, error)
	ListTransactions(ctx context.Context, pg *entity.PaginationInput) ([]entity.TransactionOutputModel, error)
	MarkCompanyPaid(ctx context.Context, transactionId string) error
	MarkWorkerPaid(ctx context.Context, transactionId string) error
}

type Janitor interface {
	RegisterJanitor(ctx context.Context, input *entity.CreateJanitorInput) (*entity.JanitorOutputModel, error)
	GetJanitor(ctx context.Context, janitorId string) (*entity.JanitorOutputModel, error)
	GetJanitorProfile(ctx context.Context, userId string) (*entity.JanitorOutputModel, error)
	UpdateJanitorProfile(ctx context.Context, userId string, patch *entity.UpdateJanitorProfileInput) (*entity.JanitorOutputModel, error)
	ListJanitors(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.JanitorOutputModel, error)
	ApproveJanitor(ctx context.Context, janitorId string) error
	SuspendJanitor(ctx context.Context, janitorId string) error
	DeactivateJanitor(ctx context.Context, janitorId string) error
}

type Message interface {
	SendMessage(ctx context.Context, callerId string, callerOrgId string, assignmentId string, body string, attachments *string) (*entity.MessageOutputModel, error)
	ListMessages(ctx context.Context, callerId string, callerOrgId string, assignmentId string, pg *entity.PaginationInput) ([]entity.MessageOutputModel, error)
	MarkMessageRead(ctx context.Context, callerId string, callerOrgId string, messageId string) error
	UnreadMessageCount(ctx context.Context, userId string) (int, error)
}

type Services struct {
	Diagnostics Diagnostics
	Job         Job
	Quote       Quote
	Assignment  Assignment
	Transaction Transaction
	Janitor     Janitor
	Message     Message
}

type ServicesDependencies struct {
	Repos         *repo.Repositories
	Emitter       *realtime.Emitter
	DefaultFeeBps int
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(deps.Repos.Diagnostics),
		Job:         NewJobService(deps.Repos.Job, deps.Emitter, deps.DefaultFeeBps),
		Quote:       NewQuoteService(deps.Repos.Quote, deps.Repos.Job, deps.Emitter),
		Assignment:  NewAssignmentService(deps.Repos.Assignment, deps.Repos.Job, deps.Emitter),
		Transaction: NewTransactionService(deps.Repos.Transaction),
		Janitor:     NewJanitorService(deps.Repos.Janitor),
		Message:     NewMessageService(deps.Repos.Message, deps.Repos.Assignment, deps.Repos.Job, deps.Emitter),
	}
}
