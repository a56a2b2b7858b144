package service

import (
	"context"
	"errors"
	"fmt"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/metrics"
	"cleaning-marketplace-api/internal/repo"
	"cleaning-marketplace-api/internal/repo/repo_errors"
)

type TransactionService struct {
	transactionRepo repo.Transaction
}

func NewTransactionService(transactionRepo repo.Transaction) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

func (s *TransactionService) GetAssignmentTransaction(ctx context.Context, assignmentId string) (*entity.TransactionOutputModel, error) {
	transaction, err := s.transactionRepo.GetTransactionByAssignmentId(ctx, assignmentId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("TransactionService.GetAssignmentTransaction - transactionRepo.GetTransactionByAssignmentId: %w", err)
	}

	return mapTransaction(transaction), nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, pg *entity.PaginationInput) ([]entity.TransactionOutputModel, error) {
	transactions, err := s.transactionRepo.ListTransactions(ctx, pg)
	if err != nil {
		return nil, fmt.Errorf("TransactionService.ListTransactions - transactionRepo.ListTransactions: %w", err)
	}

	return mapTransactions(transactions), nil
}

func (s *TransactionService) MarkCompanyPaid(ctx context.Context, transactionId string) (err error) {
	defer func() { metrics.ObserveOperation("transaction.mark_company_paid", err) }()

	err = s.transactionRepo.MarkCompanyPaid(ctx, transactionId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("TransactionService.MarkCompanyPaid - transactionRepo.MarkCompanyPaid: %w", err)
	}

	return nil
}

func (s *TransactionService) MarkWorkerPaid(ctx context.Context, transactionId string) (err error) {
	defer func() { metrics.ObserveOperation("transaction.mark_worker_paid", err) }()

	err = s.transactionRepo.MarkWorkerPaid(ctx, transactionId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("TransactionService.MarkWorkerPaid - transactionRepo.MarkWorkerPaid: %w", err)
	}

	return nil
}
