package service_test

import (
	"context"
	"testing"
	"time"

	"cleaning-marketplace-api/internal/common"
	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/realtime"
	"cleaning-marketplace-api/internal/repo/repo_errors"
	"cleaning-marketplace-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func pendingQuote(jobId uuid.UUID, workerId string, amountCents int) *entity.Quote {
	return &entity.Quote{
		Id:          uuid.New(),
		JobId:       jobId,
		WorkerId:    workerId,
		AmountCents: amountCents,
		Status:      common.QuotePending,
		SubmittedAt: time.Now(),
	}
}

func TestSubmitQuote(t *testing.T) {
	jobId := uuid.New()
	quote := pendingQuote(jobId, "worker-1", 38000)

	quoteRepo := &mockQuoteRepo{
		CreateQuoteFunc: func(ctx context.Context, input *entity.CreateQuoteInput) (uuid.UUID, error) {
			require.Equal(t, jobId.String(), input.JobId)
			require.Equal(t, "worker-1", input.WorkerId)
			return quote.Id, nil
		},
		GetQuoteByIdFunc: func(ctx context.Context, quoteId string) (*entity.Quote, error) {
			return quote, nil
		},
	}
	jobRepo := &mockJobRepo{
		GetJobOwnerFunc: func(ctx context.Context, id uuid.UUID) (string, string, error) {
			return "org-1", "owner-1", nil
		},
	}
	emitter, bus := newTestEmitter()
	s := service.NewQuoteService(quoteRepo, jobRepo, emitter)

	out, err := s.SubmitQuote(context.Background(), &entity.CreateQuoteInput{
		JobId: jobId.String(), WorkerId: "worker-1", AmountCents: 38000,
	})
	require.NoError(t, err)
	require.Equal(t, quote.Id.String(), out.Id)
	require.Equal(t, common.QuotePending, out.Status)

	events := bus.Events(realtime.CompanyBidsChannel("org-1"))
	require.Len(t, events, 1)
	require.Equal(t, "bid.received", events[0].Type)
}

func TestSubmitQuoteErrors(t *testing.T) {
	cases := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"missing job", repo_errors.ErrNotFound, service.ErrJobNotFound},
		{"bidding deadline passed", repo_errors.ErrDeadlinePassed, service.ErrBiddingClosed},
		{"job not open", repo_errors.ErrInvalidState, service.ErrJobNotAcceptingQuotes},
		{"duplicate quote", repo_errors.ErrConflict, service.ErrDuplicateQuote},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quoteRepo := &mockQuoteRepo{
				CreateQuoteFunc: func(ctx context.Context, input *entity.CreateQuoteInput) (uuid.UUID, error) {
					return uuid.Nil, tc.repoErr
				},
			}
			emitter, _ := newTestEmitter()
			s := service.NewQuoteService(quoteRepo, &mockJobRepo{}, emitter)

			_, err := s.SubmitQuote(context.Background(), &entity.CreateQuoteInput{
				JobId: uuid.NewString(), WorkerId: "worker-1", AmountCents: 100,
			})
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSubmitQuoteRejectsNonPositiveAmount(t *testing.T) {
	emitter, _ := newTestEmitter()
	s := service.NewQuoteService(&mockQuoteRepo{}, &mockJobRepo{}, emitter)

	for _, amount := range []int{0, -100} {
		_, err := s.SubmitQuote(context.Background(), &entity.CreateQuoteInput{
			JobId: uuid.NewString(), WorkerId: "worker-1", AmountCents: amount,
		})
		require.ErrorIs(t, err, service.ErrNegativeAmount)
	}
}

func TestAcceptQuote(t *testing.T) {
	jobId := uuid.New()
	quote := pendingQuote(jobId, "worker-2", 38000)
	earnings, fee := common.SplitAmount(38000, 1500)

	quoteRepo := &mockQuoteRepo{
		AcceptQuoteFunc: func(ctx context.Context, orgId string, quoteId string) (*entity.Assignment, error) {
			require.Equal(t, "org-1", orgId)
			require.Equal(t, quote.Id.String(), quoteId)
			return &entity.Assignment{
				Id: uuid.New(), JobId: jobId, WorkerId: "worker-2", QuoteId: quote.Id,
				Status:           common.AssignmentPending,
				FinalAmountCents: 38000, WorkerEarningsCents: earnings, PlatformFeeCents: fee,
				AssignedAt: time.Now(),
			}, nil
		},
	}
	emitter, bus := newTestEmitter()
	s := service.NewQuoteService(quoteRepo, &mockJobRepo{}, emitter)

	out, err := s.AcceptQuote(context.Background(), "org-1", quote.Id.String())
	require.NoError(t, err)
	require.Equal(t, 38000, out.FinalAmountCents)
	require.Equal(t, 32300, out.WorkerEarningsCents)
	require.Equal(t, 5700, out.PlatformFeeCents)
	require.Equal(t, common.AssignmentPending, out.Status)

	workerEvents := bus.Events(realtime.WorkerAssignmentsChannel("worker-2"))
	require.Len(t, workerEvents, 1)
	require.Equal(t, "bid.accepted", workerEvents[0].Type)

	companyEvents := bus.Events(realtime.CompanyBidsChannel("org-1"))
	require.Len(t, companyEvents, 1)
	require.Equal(t, "quote.accepted", companyEvents[0].Type)
}

func TestAcceptQuoteAfterAnotherAccepted(t *testing.T) {
	quote := pendingQuote(uuid.New(), "worker-3", 45000)

	quoteRepo := &mockQuoteRepo{
		AcceptQuoteFunc: func(ctx context.Context, orgId string, quoteId string) (*entity.Assignment, error) {
			return nil, repo_errors.ErrConflict
		},
	}
	emitter, _ := newTestEmitter()
	s := service.NewQuoteService(quoteRepo, &mockJobRepo{}, emitter)

	_, err := s.AcceptQuote(context.Background(), "org-1", quote.Id.String())
	require.ErrorIs(t, err, service.ErrQuoteAlreadyAccepted)
}

func TestAcceptQuoteResolvedQuote(t *testing.T) {
	quoteRepo := &mockQuoteRepo{
		AcceptQuoteFunc: func(ctx context.Context, orgId string, quoteId string) (*entity.Assignment, error) {
			return nil, repo_errors.ErrAlreadyResolved
		},
	}
	emitter, _ := newTestEmitter()
	s := service.NewQuoteService(quoteRepo, &mockJobRepo{}, emitter)

	_, err := s.AcceptQuote(context.Background(), "org-1", uuid.NewString())
	require.ErrorIs(t, err, service.ErrQuoteNotPending)
}

func TestAcceptQuoteNotFound(t *testing.T) {
	quoteRepo := &mockQuoteRepo{
		AcceptQuoteFunc: func(ctx context.Context, orgId string, quoteId string) (*entity.Assignment, error) {
			return nil, repo_errors.ErrNotFound
		},
	}
	emitter, _ := newTestEmitter()
	s := service.NewQuoteService(quoteRepo, &mockJobRepo{}, emitter)

	_, err := s.AcceptQuote(context.Background(), "org-1", uuid.NewString())
	require.ErrorIs(t, err, service.ErrQuoteNotFound)
}

// A caller from another tenant probing a foreign, already-resolved quote must
// get the same answer as for a missing quote, never the quote's state.
func TestAcceptQuoteForeignTenantSeesNotFound(t *testing.T) {
	quote := pendingQuote(uuid.New(), "worker-3", 45000)
	quote.Status = common.QuoteRejected

	quoteRepo := &mockQuoteRepo{
		GetQuoteByIdFunc: func(ctx context.Context, quoteId string) (*entity.Quote, error) {
			t.Fatal("accept must not consult the tenant-unscoped quote lookup")
			return quote, nil
		},
		AcceptQuoteFunc: func(ctx context.Context, orgId string, quoteId string) (*entity.Assignment, error) {
			// the scoped job lock hides foreign rows
			return nil, repo_errors.ErrNotFound
		},
	}
	emitter, _ := newTestEmitter()
	s := service.NewQuoteService(quoteRepo, &mockJobRepo{}, emitter)

	_, err := s.AcceptQuote(context.Background(), "org-2", quote.Id.String())
	require.ErrorIs(t, err, service.ErrQuoteNotFound)
	require.NotErrorIs(t, err, service.ErrQuoteNotPending)
}

func TestRejectQuoteEmitsToWorker(t *testing.T) {
	quote := pendingQuote(uuid.New(), "worker-4", 20000)

	quoteRepo := &mockQuoteRepo{
		GetQuoteByIdFunc: func(ctx context.Context, quoteId string) (*entity.Quote, error) {
			return quote, nil
		},
		RejectQuoteFunc: func(ctx context.Context, orgId string, quoteId string) error {
			return nil
		},
	}
	emitter, bus := newTestEmitter()
	s := service.NewQuoteService(quoteRepo, &mockJobRepo{}, emitter)

	require.NoError(t, s.RejectQuote(context.Background(), "org-1", quote.Id.String()))

	events := bus.Events(realtime.WorkerAssignmentsChannel("worker-4"))
	require.Len(t, events, 1)
	require.Equal(t, "bid.rejected", events[0].Type)
}

func TestWithdrawQuoteAlreadyResolved(t *testing.T) {
	quote := pendingQuote(uuid.New(), "worker-4", 20000)

	quoteRepo := &mockQuoteRepo{
		GetQuoteByIdFunc: func(ctx context.Context, quoteId string) (*entity.Quote, error) {
			return quote, nil
		},
		WithdrawQuoteFunc: func(ctx context.Context, workerId string, quoteId string) error {
			return repo_errors.ErrAlreadyResolved
		},
	}
	emitter, _ := newTestEmitter()
	s := service.NewQuoteService(quoteRepo, &mockJobRepo{}, emitter)

	err := s.WithdrawQuote(context.Background(), "worker-4", quote.Id.String())
	require.ErrorIs(t, err, service.ErrQuoteNotPending)
}
