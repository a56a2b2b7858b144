package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/repo/repo_errors"
	"cleaning-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

const transactionColumns = "id, assignment_id, company_payment_cents, worker_payment_cents, platform_fee_cents, " +
	"company_paid, worker_paid, created_at, company_paid_at, worker_paid_at"

type TransactionRepo struct {
	*postgres.Postgres
}

func NewTransactionRepo(pgdb *postgres.Postgres) *TransactionRepo {
	return &TransactionRepo{pgdb}
}

func (r *TransactionRepo) GetTransactionByAssignmentId(ctx context.Context, assignmentId string) (*entity.PlatformTransaction, error) {
	uuidForm, err := uuid.Parse(assignmentId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getSql, args, _ := r.SqlBuilder.
		Select(transactionColumns).
		From("platform_transactions").
		Where("assignment_id = ?", uuidForm).
		ToSql()

	var transaction entity.PlatformTransaction
	if err := r.Database.GetContext(ctx, &transaction, getSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &transaction, nil
}

func (r *TransactionRepo) ListTransactions(ctx context.Context, pg *entity.PaginationInput) ([]entity.PlatformTransaction, error) {
	listSql, args, _ := r.SqlBuilder.
		Select(transactionColumns).
		From("platform_transactions").
		OrderBy("created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	transactions := make([]entity.PlatformTransaction, 0)
	if err := r.Database.SelectContext(ctx, &transactions, listSql, args...); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *TransactionRepo) MarkCompanyPaid(ctx context.Context, transactionId string) error {
	return r.markPaid(ctx, transactionId, "company_paid", "company_paid_at")
}

func (r *TransactionRepo) MarkWorkerPaid(ctx context.Context, transactionId string) error {
	return r.markPaid(ctx, transactionId, "worker_paid", "worker_paid_at")
}

// markPaid flips a paid flag. Flipping twice is a no-op; the first paid-at
// stamp is kept.
func (r *TransactionRepo) markPaid(ctx context.Context, transactionId string, flagColumn string, atColumn string) error {
	uuidForm, err := uuid.Parse(transactionId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("platform_transactions").
		Set(flagColumn, true).
		Set(atColumn, time.Now().UTC()).
		Where("id = ?", uuidForm).
		Where(flagColumn+" = false").
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		existsSql, args, _ := r.SqlBuilder.
			Select("COUNT(*)").
			From("platform_transactions").
			Where("id = ?", uuidForm).
			ToSql()

		var count int
		if err := r.Database.GetContext(ctx, &count, existsSql, args...); err != nil {
			return err
		}
		if count == 0 {
			return repo_errors.ErrNotFound
		}
	}

	return nil
}
