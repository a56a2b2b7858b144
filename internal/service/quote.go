package service

import (
	"context"
	"errors"
	"fmt"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/metrics"
	"cleaning-marketplace-api/internal/realtime"
	"cleaning-marketplace-api/internal/repo"
	"cleaning-marketplace-api/internal/repo/repo_errors"
)

type QuoteService struct {
	quoteRepo repo.Quote
	jobRepo   repo.Job
	emitter   *realtime.Emitter
}

func NewQuoteService(quoteRepo repo.Quote, jobRepo repo.Job, emitter *realtime.Emitter) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		jobRepo:   jobRepo,
		emitter:   emitter,
	}
}

func (s *QuoteService) SubmitQuote(ctx context.Context, input *entity.CreateQuoteInput) (out *entity.QuoteOutputModel, err error) {
	defer func() { metrics.ObserveOperation("quote.submit", err) }()

	if input.AmountCents <= 0 {
		return nil, ErrNegativeAmount
	}

	id, err := s.quoteRepo.CreateQuote(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrNotFound):
			return nil, ErrJobNotFound
		case errors.Is(err, repo_errors.ErrDeadlinePassed):
			return nil, ErrBiddingClosed
		case errors.Is(err, repo_errors.ErrInvalidState):
			return nil, ErrJobNotAcceptingQuotes
		case errors.Is(err, repo_errors.ErrConflict):
			return nil, ErrDuplicateQuote
		}
		return nil, fmt.Errorf("QuoteService.SubmitQuote - quoteRepo.CreateQuote: %w", err)
	}

	quote, err := s.quoteRepo.GetQuoteById(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("QuoteService.SubmitQuote - quoteRepo.GetQuoteById: %w", err)
	}

	if orgId, _, err := s.jobRepo.GetJobOwner(ctx, quote.JobId); err == nil {
		s.emitter.Emit(realtime.CompanyBidsChannel(orgId), realtime.Event{
			Type: "bid.received",
			Data: map[string]any{
				"jobId":       quote.JobId.String(),
				"quoteId":     quote.Id.String(),
				"amountCents": quote.AmountCents,
			},
		})
	}

	return mapQuote(quote), nil
}

func (s *QuoteService) ListJobQuotes(ctx context.Context, orgId string, jobId string, pg *entity.PaginationInput) ([]entity.QuoteOutputModel, error) {
	// quotes on a job are visible only to the job's owner
	_, err := s.jobRepo.GetJobById(ctx, orgId, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("QuoteService.ListJobQuotes - jobRepo.GetJobById: %w", err)
	}

	quotes, err := s.quoteRepo.ListJobQuotes(ctx, jobId, pg)
	if err != nil {
		return nil, fmt.Errorf("QuoteService.ListJobQuotes - quoteRepo.ListJobQuotes: %w", err)
	}

	return mapQuotes(quotes), nil
}

func (s *QuoteService) ListWorkerQuotes(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.QuoteOutputModel, error) {
	quotes, err := s.quoteRepo.ListWorkerQuotes(ctx, workerId, pg)
	if err != nil {
		return nil, fmt.Errorf("QuoteService.ListWorkerQuotes - quoteRepo.ListWorkerQuotes: %w", err)
	}

	return mapQuotes(quotes), nil
}

func (s *QuoteService) AcceptQuote(ctx context.Context, orgId string, quoteId string) (out *entity.AssignmentOutputModel, err error) {
	defer func() { metrics.ObserveOperation("quote.accept", err) }()

	// all precondition checks happen inside the repo transaction, after the
	// org-scoped job lock; a foreign tenant learns nothing beyond NotFound
	assignment, err := s.quoteRepo.AcceptQuote(ctx, orgId, quoteId)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrNotFound):
			return nil, ErrQuoteNotFound
		case errors.Is(err, repo_errors.ErrInvalidState):
			return nil, ErrJobNotAcceptingQuotes
		case errors.Is(err, repo_errors.ErrAlreadyResolved):
			return nil, ErrQuoteNotPending
		case errors.Is(err, repo_errors.ErrConflict):
			return nil, ErrQuoteAlreadyAccepted
		}
		return nil, fmt.Errorf("QuoteService.AcceptQuote - quoteRepo.AcceptQuote: %w", err)
	}

	s.emitter.Emit(realtime.WorkerAssignmentsChannel(assignment.WorkerId), realtime.Event{
		Type: "bid.accepted",
		Data: map[string]any{
			"jobId":        assignment.JobId.String(),
			"assignmentId": assignment.Id.String(),
			"amountCents":  assignment.WorkerEarningsCents,
		},
	})
	s.emitter.Emit(realtime.CompanyBidsChannel(orgId), realtime.Event{
		Type: "quote.accepted",
		Data: map[string]any{
			"jobId":        assignment.JobId.String(),
			"quoteId":      assignment.QuoteId.String(),
			"assignmentId": assignment.Id.String(),
		},
	})

	return mapAssignment(assignment), nil
}

func (s *QuoteService) RejectQuote(ctx context.Context, orgId string, quoteId string) (err error) {
	defer func() { metrics.ObserveOperation("quote.reject", err) }()

	quote, err := s.quoteRepo.GetQuoteById(ctx, quoteId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("QuoteService.RejectQuote - quoteRepo.GetQuoteById: %w", err)
	}

	err = s.quoteRepo.RejectQuote(ctx, orgId, quoteId)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrNotFound):
			return ErrQuoteNotFound
		case errors.Is(err, repo_errors.ErrAlreadyResolved):
			return ErrQuoteNotPending
		}
		return fmt.Errorf("QuoteService.RejectQuote - quoteRepo.RejectQuote: %w", err)
	}

	s.emitter.Emit(realtime.WorkerAssignmentsChannel(quote.WorkerId), realtime.Event{
		Type: "bid.rejected",
		Data: map[string]any{"jobId": quote.JobId.String(), "quoteId": quote.Id.String()},
	})

	return nil
}

func (s *QuoteService) WithdrawQuote(ctx context.Context, workerId string, quoteId string) (err error) {
	defer func() { metrics.ObserveOperation("quote.withdraw", err) }()

	quote, err := s.quoteRepo.GetQuoteById(ctx, quoteId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("QuoteService.WithdrawQuote - quoteRepo.GetQuoteById: %w", err)
	}

	err = s.quoteRepo.WithdrawQuote(ctx, workerId, quoteId)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrNotFound):
			return ErrQuoteNotFound
		case errors.Is(err, repo_errors.ErrAlreadyResolved):
			return ErrQuoteNotPending
		}
		return fmt.Errorf("QuoteService.WithdrawQuote - quoteRepo.WithdrawQuote: %w", err)
	}

	if orgId, _, err := s.jobRepo.GetJobOwner(ctx, quote.JobId); err == nil {
		s.emitter.Emit(realtime.CompanyBidsChannel(orgId), realtime.Event{
			Type: "bid.withdrawn",
			Data: map[string]any{"jobId": quote.JobId.String(), "quoteId": quote.Id.String()},
		})
	}

	return nil
}
