package repo

import (
	"context"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/repo/pgdb"
	"cleaning-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Job interface {
	CreateJob(ctx context.Context, input *entity.CreateJobInput) (uuid.UUID, error)
	GetJobById(ctx context.Context, orgId string, jobId string) (*entity.Job, error)
	GetJobOwner(ctx context.Context, jobId uuid.UUID) (orgId string, createdBy string, err error)
	ListOrgJobs(ctx context.Context, orgId string, statuses []string, search string, pg *entity.PaginationInput) ([]entity.Job, error)
	BrowseOpenJobs(ctx context.Context, workerId string, filter *entity.BrowseJobsInput, pg *entity.PaginationInput) ([]entity.Job, error)
	UpdateJob(ctx context.Context, orgId string, jobId string, patch *entity.UpdateJobInput) error
	DeleteJob(ctx context.Context, orgId string, jobId string) error
	CancelJob(ctx context.Context, orgId string, jobId string) (*entity.Job, error)
	RequestQuotes(ctx context.Context, orgId string, jobId string, workerIds []string, broadcast bool) error
}

type Quote interface {
	CreateQuote(ctx context.Context, input *entity.CreateQuoteInput) (uuid.UUID, error)
	GetQuoteById(ctx context.Context, quoteId string) (*entity.Quote, error)
	ListJobQuotes(ctx context.Context, jobId string, pg *entity.PaginationInput) ([]entity.Quote, error)
	ListWorkerQuotes(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.Quote, error)
	AcceptQuote(ctx context.Context, orgId string, quoteId string) (*entity.Assignment, error)
	RejectQuote(ctx context.Context, orgId string, quoteId string) error
	WithdrawQuote(ctx context.Context, workerId string, quoteId string) error
}

type Assignment interface {
	GetAssignmentById(ctx context.Context, assignmentId string) (*entity.Assignment, error)
	ListWorkerAssignments(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.Assignment, error)
	AcceptAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error)
	StartAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error)
	CompleteAssignment(ctx context.Context, workerId string, assignmentId string, reportedHours int, notes *string) (*entity.Assignment, error)
	CancelAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error)
	RateAssignment(ctx context.Context, assignmentId string, byWorker bool, rating int) error
}

type Transaction interface {
	GetTransactionByAssignmentId(ctx context.Context, assignmentId string) (*entity.PlatformTransaction, error)
	ListTransactions(ctx context.Context, pg *entity.PaginationInput) ([]entity.PlatformTransaction, error)
	MarkCompanyPaid(ctx context.Context, transactionId string) error
	MarkWorkerPaid(ctx context.Context, transactionId string) error
}

type Janitor interface {
	CreateJanitor(ctx context.Context, input *entity.CreateJanitorInput) (uuid.UUID, error)
	GetJanitorById(ctx context.Context, janitorId string) (*entity.Janitor, error)
	GetJanitorByUserId(ctx context.Context, userId string) (*entity.Janitor, error)
	ListJanitors(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.Janitor, error)
	UpdateJanitorStatus(ctx context.Context, janitorId string, newStatus string) error
	UpdateJanitorProfile(ctx context.Context, userId string, patch *entity.UpdateJanitorProfileInput) error
}

type Message interface {
	CreateMessage(ctx context.Context, assignmentId string, senderId string, senderType string, body string, attachments *string) (*entity.Message, error)
	GetMessageById(ctx context.Context, messageId string) (*entity.Message, error)
	ListAssignmentMessages(ctx context.Context, assignmentId string, pg *entity.PaginationInput) ([]entity.Message, error)
	MarkMessageRead(ctx context.Context, messageId string) error
	CountUnreadMessages(ctx context.Context, userId string) (int, error)
}

type Repositories struct {
	Diagnostics
	Job
	Quote
	Assignment
	Transaction
	Janitor
	Message
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Job:         pgdb.NewJobRepo(p),
		Quote:       pgdb.NewQuoteRepo(p),
		Assignment:  pgdb.NewAssignmentRepo(p),
		Transaction: pgdb.NewTransactionRepo(p),
		Janitor:     pgdb.NewJanitorRepo(p),
		Message:     pgdb.NewMessageRepo(p),
	}
}
