package service_test

import (
	"context"
	"errors"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errNoMock = errors.New("call not mocked")

func newTestEmitter() (*realtime.Emitter, *realtime.MemoryBus) {
	bus := realtime.NewMemoryBus()
	return realtime.NewEmitter(bus, zap.NewNop()), bus
}

type mockJobRepo struct {
	CreateJobFunc      func(ctx context.Context, input *entity.CreateJobInput) (uuid.UUID, error)
	GetJobByIdFunc     func(ctx context.Context, orgId string, jobId string) (*entity.Job, error)
	GetJobOwnerFunc    func(ctx context.Context, jobId uuid.UUID) (string, string, error)
	ListOrgJobsFunc    func(ctx context.Context, orgId string, statuses []string, search string, pg *entity.PaginationInput) ([]entity.Job, error)
	BrowseOpenJobsFunc func(ctx context.Context, workerId string, filter *entity.BrowseJobsInput, pg *entity.PaginationInput) ([]entity.Job, error)
	UpdateJobFunc      func(ctx context.Context, orgId string, jobId string, patch *entity.UpdateJobInput) error
	DeleteJobFunc      func(ctx context.Context, orgId string, jobId string) error
	CancelJobFunc      func(ctx context.Context, orgId string, jobId string) (*entity.Job, error)
	RequestQuotesFunc  func(ctx context.Context, orgId string, jobId string, workerIds []string, broadcast bool) error
}

func (m *mockJobRepo) CreateJob(ctx context.Context, input *entity.CreateJobInput) (uuid.UUID, error) {
	if m.CreateJobFunc == nil {
		return uuid.Nil, errNoMock
	}
	return m.CreateJobFunc(ctx, input)
}

func (m *mockJobRepo) GetJobById(ctx context.Context, orgId string, jobId string) (*entity.Job, error) {
	if m.GetJobByIdFunc == nil {
		return nil, errNoMock
	}
	return m.GetJobByIdFunc(ctx, orgId, jobId)
}

func (m *mockJobRepo) GetJobOwner(ctx context.Context, jobId uuid.UUID) (string, string, error) {
	if m.GetJobOwnerFunc == nil {
		return "", "", errNoMock
	}
	return m.GetJobOwnerFunc(ctx, jobId)
}

func (m *mockJobRepo) ListOrgJobs(ctx context.Context, orgId string, statuses []string, search string, pg *entity.PaginationInput) ([]entity.Job, error) {
	if m.ListOrgJobsFunc == nil {
		return nil, errNoMock
	}
	return m.ListOrgJobsFunc(ctx, orgId, statuses, search, pg)
}

func (m *mockJobRepo) BrowseOpenJobs(ctx context.Context, workerId string, filter *entity.BrowseJobsInput, pg *entity.PaginationInput) ([]entity.Job, error) {
	if m.BrowseOpenJobsFunc == nil {
		return nil, errNoMock
	}
	return m.BrowseOpenJobsFunc(ctx, workerId, filter, pg)
}

func (m *mockJobRepo) UpdateJob(ctx context.Context, orgId string, jobId string, patch *entity.UpdateJobInput) error {
	if m.UpdateJobFunc == nil {
		return errNoMock
	}
	return m.UpdateJobFunc(ctx, orgId, jobId, patch)
}

func (m *mockJobRepo) DeleteJob(ctx context.Context, orgId string, jobId string) error {
	if m.DeleteJobFunc == nil {
		return errNoMock
	}
	return m.DeleteJobFunc(ctx, orgId, jobId)
}

func (m *mockJobRepo) CancelJob(ctx context.Context, orgId string, jobId string) (*entity.Job, error) {
	if m.CancelJobFunc == nil {
		return nil, errNoMock
	}
	return m.CancelJobFunc(ctx, orgId, jobId)
}

func (m *mockJobRepo) RequestQuotes(ctx context.Context, orgId string, jobId string, workerIds []string, broadcast bool) error {
	if m.RequestQuotesFunc == nil {
		return errNoMock
	}
	return m.RequestQuotesFunc(ctx, orgId, jobId, workerIds, broadcast)
}

type mockQuoteRepo struct {
	CreateQuoteFunc      func(ctx context.Context, input *entity.CreateQuoteInput) (uuid.UUID, error)
	GetQuoteByIdFunc     func(ctx context.Context, quoteId string) (*entity.Quote, error)
	ListJobQuotesFunc    func(ctx context.Context, jobId string, pg *entity.PaginationInput) ([]entity.Quote, error)
	ListWorkerQuotesFunc func(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.Quote, error)
	AcceptQuoteFunc      func(ctx context.Context, orgId string, quoteId string) (*entity.Assignment, error)
	RejectQuoteFunc      func(ctx context.Context, orgId string, quoteId string) error
	WithdrawQuoteFunc    func(ctx context.Context, workerId string, quoteId string) error
}

func (m *mockQuoteRepo) CreateQuote(ctx context.Context, input *entity.CreateQuoteInput) (uuid.UUID, error) {
	if m.CreateQuoteFunc == nil {
		return uuid.Nil, errNoMock
	}
	return m.CreateQuoteFunc(ctx, input)
}

func (m *mockQuoteRepo) GetQuoteById(ctx context.Context, quoteId string) (*entity.Quote, error) {
	if m.GetQuoteByIdFunc == nil {
		return nil, errNoMock
	}
	return m.GetQuoteByIdFunc(ctx, quoteId)
}

func (m *mockQuoteRepo) ListJobQuotes(ctx context.Context, jobId string, pg *entity.PaginationInput) ([]entity.Quote, error) {
	if m.ListJobQuotesFunc == nil {
		return nil, errNoMock
	}
	return m.ListJobQuotesFunc(ctx, jobId, pg)
}

func (m *mockQuoteRepo) ListWorkerQuotes(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.Quote, error) {
	if m.ListWorkerQuotesFunc == nil {
		return nil, errNoMock
	}
	return m.ListWorkerQuotesFunc(ctx, workerId, pg)
}

func (m *mockQuoteRepo) AcceptQuote(ctx context.Context, orgId string, quoteId string) (*entity.Assignment, error) {
	if m.AcceptQuoteFunc == nil {
		return nil, errNoMock
	}
	return m.AcceptQuoteFunc(ctx, orgId, quoteId)
}

func (m *mockQuoteRepo) RejectQuote(ctx context.Context, orgId string, quoteId string) error {
	if m.RejectQuoteFunc == nil {
		return errNoMock
	}
	return m.RejectQuoteFunc(ctx, orgId, quoteId)
}

func (m *mockQuoteRepo) WithdrawQuote(ctx context.Context, workerId string, quoteId string) error {
	if m.WithdrawQuoteFunc == nil {
		return errNoMock
	}
	return m.WithdrawQuoteFunc(ctx, workerId, quoteId)
}

type mockAssignmentRepo struct {
	GetAssignmentByIdFunc     func(ctx context.Context, assignmentId string) (*entity.Assignment, error)
	ListWorkerAssignmentsFunc func(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.Assignment, error)
	AcceptAssignmentFunc      func(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error)
	StartAssignmentFunc       func(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error)
	CompleteAssignmentFunc    func(ctx context.Context, workerId string, assignmentId string, reportedHours int, notes *string) (*entity.Assignment, error)
	CancelAssignmentFunc      func(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error)
	RateAssignmentFunc        func(ctx context.Context, assignmentId string, byWorker bool, rating int) error
}

func (m *mockAssignmentRepo) GetAssignmentById(ctx context.Context, assignmentId string) (*entity.Assignment, error) {
	if m.GetAssignmentByIdFunc == nil {
		return nil, errNoMock
	}
	return m.GetAssignmentByIdFunc(ctx, assignmentId)
}

func (m *mockAssignmentRepo) ListWorkerAssignments(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.Assignment, error) {
	if m.ListWorkerAssignmentsFunc == nil {
		return nil, errNoMock
	}
	return m.ListWorkerAssignmentsFunc(ctx, workerId, pg)
}

func (m *mockAssignmentRepo) AcceptAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error) {
	if m.AcceptAssignmentFunc == nil {
		return nil, errNoMock
	}
	return m.AcceptAssignmentFunc(ctx, workerId, assignmentId)
}

func (m *mockAssignmentRepo) StartAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error) {
	if m.StartAssignmentFunc == nil {
		return nil, errNoMock
	}
	return m.StartAssignmentFunc(ctx, workerId, assignmentId)
}

func (m *mockAssignmentRepo) CompleteAssignment(ctx context.Context, workerId string, assignmentId string, reportedHours int, notes *string) (*entity.Assignment, error) {
	if m.CompleteAssignmentFunc == nil {
		return nil, errNoMock
	}
	return m.CompleteAssignmentFunc(ctx, workerId, assignmentId, reportedHours, notes)
}

func (m *mockAssignmentRepo) CancelAssignment(ctx context.Context, workerId string, assignmentId string) (*entity.Assignment, error) {
	if m.CancelAssignmentFunc == nil {
		return nil, errNoMock
	}
	return m.CancelAssignmentFunc(ctx, workerId, assignmentId)
}

func (m *mockAssignmentRepo) RateAssignment(ctx context.Context, assignmentId string, byWorker bool, rating int) error {
	if m.RateAssignmentFunc == nil {
		return errNoMock
	}
	return m.RateAssignmentFunc(ctx, assignmentId, byWorker, rating)
}

type mockMessageRepo struct {
	CreateMessageFunc          func(ctx context.Context, assignmentId string, senderId string, senderType string, body string, attachments *string) (*entity.Message, error)
	GetMessageByIdFunc         func(ctx context.Context, messageId string) (*entity.Message, error)
	ListAssignmentMessagesFunc func(ctx context.Context, assignmentId string, pg *entity.PaginationInput) ([]entity.Message, error)
	MarkMessageReadFunc        func(ctx context.Context, messageId string) error
	CountUnreadMessagesFunc    func(ctx context.Context, userId string) (int, error)
}

func (m *mockMessageRepo) CreateMessage(ctx context.Context, assignmentId string, senderId string, senderType string, body string, attachments *string) (*entity.Message, error) {
	if m.CreateMessageFunc == nil {
		return nil, errNoMock
	}
	return m.CreateMessageFunc(ctx, assignmentId, senderId, senderType, body, attachments)
}

func (m *mockMessageRepo) GetMessageById(ctx context.Context, messageId string) (*entity.Message, error) {
	if m.GetMessageByIdFunc == nil {
		return nil, errNoMock
	}
	return m.GetMessageByIdFunc(ctx, messageId)
}

func (m *mockMessageRepo) ListAssignmentMessages(ctx context.Context, assignmentId string, pg *entity.PaginationInput) ([]entity.Message, error) {
	if m.ListAssignmentMessagesFunc == nil {
		return nil, errNoMock
	}
	return m.ListAssignmentMessagesFunc(ctx, assignmentId, pg)
}

func (m *mockMessageRepo) MarkMessageRead(ctx context.Context, messageId string) error {
	if m.MarkMessageReadFunc == nil {
		return errNoMock
	}
	return m.MarkMessageReadFunc(ctx, messageId)
}

func (m *mockMessageRepo) CountUnreadMessages(ctx context.Context, userId string) (int, error) {
	if m.CountUnreadMessagesFunc == nil {
		return 0, errNoMock
	}
	return m.CountUnreadMessagesFunc(ctx, userId)
}
