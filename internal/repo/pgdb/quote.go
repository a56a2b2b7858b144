package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cleaning-marketplace-api/internal/common"
	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/repo/repo_errors"
	"cleaning-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

const quoteColumns = "id, job_id, worker_id, amount_cents, message, estimated_hours, available_date, status, submitted_at, responded_at"

type QuoteRepo struct {
	*postgres.Postgres
}

func NewQuoteRepo(pgdb *postgres.Postgres) *QuoteRepo {
	return &QuoteRepo{pgdb}
}

func (r *QuoteRepo) CreateQuote(ctx context.Context, input *entity.CreateQuoteInput) (uuid.UUID, error) {
	jobUuid, err := uuid.Parse(input.JobId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() { _ = tx.Rollback() }()

	lockJobSql, args, _ := r.SqlBuilder.
		Select("status", "bidding_ends_at").
		From("jobs").
		Where("id = ?", jobUuid).
		Suffix("FOR UPDATE").
		ToSql()

	var job struct {
		Status        string     `db:"status"`
		BiddingEndsAt *time.Time `db:"bidding_ends_at"`
	}
	if err = tx.GetContext(ctx, &job, lockJobSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, repo_errors.ErrNotFound
		}

		return uuid.Nil, err
	}

	if !common.JobAcceptsQuotes(job.Status) {
		return uuid.Nil, repo_errors.ErrInvalidState
	}
	if job.BiddingEndsAt != nil && time.Now().After(*job.BiddingEndsAt) {
		return uuid.Nil, repo_errors.ErrDeadlinePassed
	}

	dupSql, args, _ := r.SqlBuilder.
		Select("COUNT(*)").
		From("job_quotes").
		Where("job_id = ?", jobUuid).
		Where("worker_id = ?", input.WorkerId).
		Where("status IN (?, ?)", common.QuotePending, common.QuoteAccepted).
		ToSql()

	var existing int
	if err = tx.GetContext(ctx, &existing, dupSql, args...); err != nil {
		return uuid.Nil, err
	}
	if existing > 0 {
		return uuid.Nil, repo_errors.ErrConflict
	}

	insertSql, args, _ := r.SqlBuilder.
		Insert("job_quotes").
		Columns("job_id", "worker_id", "amount_cents", "message", "estimated_hours", "available_date", "status").
		Values(jobUuid, input.WorkerId, input.AmountCents, input.Message, input.EstimatedHours, input.AvailableDate, common.QuotePending).
		Suffix("RETURNING id").
		ToSql()

	var quoteId uuid.UUID
	if err = tx.GetContext(ctx, &quoteId, insertSql, args...); err != nil {
		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return quoteId, nil
}

func (r *QuoteRepo) GetQuoteById(ctx context.Context, quoteId string) (*entity.Quote, error) {
	uuidForm, err := uuid.Parse(quoteId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getQuoteSql, args, _ := r.SqlBuilder.
		Select(quoteColumns).
		From("job_quotes").
		Where("id = ?", uuidForm).
		ToSql()

	var quote entity.Quote
	if err := r.Database.GetContext(ctx, &quote, getQuoteSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &quote, nil
}

func (r *QuoteRepo) ListJobQuotes(ctx context.Context, jobId string, pg *entity.PaginationInput) ([]entity.Quote, error) {
	listSql, args, _ := r.SqlBuilder.
		Select(quoteColumns).
		From("job_quotes").
		Where("job_id = ?", jobId).
		OrderBy("amount_cents ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	quotes := make([]entity.Quote, 0)
	if err := r.Database.SelectContext(ctx, &quotes, listSql, args...); err != nil {
		return nil, err
	}

	return quotes, nil
}

func (r *QuoteRepo) ListWorkerQuotes(ctx context.Context, workerId string, pg *entity.PaginationInput) ([]entity.Quote, error) {
	listSql, args, _ := r.SqlBuilder.
		Select(quoteColumns).
		From("job_quotes").
		Where("worker_id = ?", workerId).
		OrderBy("submitted_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	quotes := make([]entity.Quote, 0)
	if err := r.Database.SelectContext(ctx, &quotes, listSql, args...); err != nil {
		return nil, err
	}

	return quotes, nil
}

// AcceptQuote performs the whole acceptance as one transaction: lock the quote,
// then its job (always in that order), verify preconditions, reject sibling
// quotes, create the assignment and its bookkeeping transaction, and move the
// job to assigned. Two concurrent accepts on the same job serialize on the row
// locks; the loser sees ErrConflict.
func (r *QuoteRepo) AcceptQuote(ctx context.Context, orgId string, quoteId string) (*entity.Assignment, error) {
	uuidForm, err := uuid.Parse(quoteId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	lockQuoteSql, args, _ := r.SqlBuilder.
		Select(quoteColumns).
		From("job_quotes").
		Where("id = ?", uuidForm).
		Suffix("FOR UPDATE").
		ToSql()

	var quote entity.Quote
	if err = tx.GetContext(ctx, &quote, lockQuoteSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	lockJobSql, args, _ := r.SqlBuilder.
		Select(jobColumns).
		From("jobs").
		Where("id = ?", quote.JobId).
		Where("org_id = ?", orgId).
		Suffix("FOR UPDATE").
		ToSql()

	var job entity.Job
	if err = tx.GetContext(ctx, &job, lockJobSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	// a retry of an accept that already went through is a success, not a conflict
	if job.Status == common.JobAssigned && job.AcceptedQuoteId != nil && *job.AcceptedQuoteId == quote.Id {
		return r.getAssignmentByQuoteId(ctx, tx, quote.Id)
	}

	if !common.JobAcceptsQuotes(job.Status) {
		return nil, repo_errors.ErrInvalidState
	}
	// ownership is proven by the org-scoped job lock above, so reporting the
	// quote's resolved state here reveals nothing to other tenants
	if quote.Status != common.QuotePending {
		return nil, repo_errors.ErrAlreadyResolved
	}

	acceptedSql, args, _ := r.SqlBuilder.
		Select("COUNT(*)").
		From("job_quotes").
		Where("job_id = ?", job.Id).
		Where("status = ?", common.QuoteAccepted).
		ToSql()

	var acceptedCount int
	if err = tx.GetContext(ctx, &acceptedCount, acceptedSql, args...); err != nil {
		return nil, err
	}
	if acceptedCount > 0 {
		return nil, repo_errors.ErrConflict
	}

	workerEarnings, platformFee := common.SplitAmount(quote.AmountCents, job.PlatformFeeBps)
	now := time.Now().UTC()

	rejectSiblingsSql, args, _ := r.SqlBuilder.
		Update("job_quotes").
		Set("status", common.QuoteRejected).
		Set("responded_at", now).
		Where("job_id = ?", job.Id).
		Where("status = ?", common.QuotePending).
		Where("id <> ?", quote.Id).
		ToSql()

	if _, err = tx.ExecContext(ctx, rejectSiblingsSql, args...); err != nil {
		return nil, err
	}

	acceptSql, args, _ := r.SqlBuilder.
		Update("job_quotes").
		Set("status", common.QuoteAccepted).
		Set("responded_at", now).
		Where("id = ?", quote.Id).
		ToSql()

	if _, err = tx.ExecContext(ctx, acceptSql, args...); err != nil {
		return nil, err
	}

	createAssignmentSql, args, _ := r.SqlBuilder.
		Insert("job_assignments").
		Columns("job_id", "worker_id", "quote_id", "status", "final_amount_cents", "worker_earnings_cents", "platform_fee_cents").
		Values(job.Id, quote.WorkerId, quote.Id, common.AssignmentPending, quote.AmountCents, workerEarnings, platformFee).
		Suffix("RETURNING " + assignmentColumns).
		ToSql()

	var assignment entity.Assignment
	if err = tx.GetContext(ctx, &assignment, createAssignmentSql, args...); err != nil {
		return nil, err
	}

	createTransactionSql, args, _ := r.SqlBuilder.
		Insert("platform_transactions").
		Columns("assignment_id", "company_payment_cents", "worker_payment_cents", "platform_fee_cents").
		Values(assignment.Id, quote.AmountCents, workerEarnings, platformFee).
		ToSql()

	if _, err = tx.ExecContext(ctx, createTransactionSql, args...); err != nil {
		return nil, err
	}

	assignJobSql, args, _ := r.SqlBuilder.
		Update("jobs").
		Set("status", common.JobAssigned).
		Set("assigned_worker_id", quote.WorkerId).
		Set("accepted_quote_id", quote.Id).
		Set("final_amount_cents", quote.AmountCents).
		Set("platform_fee_cents", platformFee).
		Set("updated_at", now).
		Where("id = ?", job.Id).
		ToSql()

	if _, err = tx.ExecContext(ctx, assignJobSql, args...); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (r *QuoteRepo) getAssignmentByQuoteId(ctx context.Context, q queryer, quoteId uuid.UUID) (*entity.Assignment, error) {
	getSql, args, _ := r.SqlBuilder.
		Select(assignmentColumns).
		From("job_assignments").
		Where("quote_id = ?", quoteId).
		Where("status <> ?", common.AssignmentCanceled).
		ToSql()

	var assignment entity.Assignment
	if err := q.GetContext(ctx, &assignment, getSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &assignment, nil
}

func (r *QuoteRepo) RejectQuote(ctx context.Context, orgId string, quoteId string) error {
	return r.resolveQuote(ctx, quoteId, common.QuoteRejected, func(quote *entity.Quote, tx queryer) error {
		ownerSql, args, _ := r.SqlBuilder.
			Select("COUNT(*)").
			From("jobs").
			Where("id = ?", quote.JobId).
			Where("org_id = ?", orgId).
			ToSql()

		var owned int
		if err := tx.GetContext(ctx, &owned, ownerSql, args...); err != nil {
			return err
		}
		if owned == 0 {
			return repo_errors.ErrNotFound
		}

		return nil
	})
}

func (r *QuoteRepo) WithdrawQuote(ctx context.Context, workerId string, quoteId string) error {
	return r.resolveQuote(ctx, quoteId, common.QuoteWithdrawn, func(quote *entity.Quote, tx queryer) error {
		if quote.WorkerId != workerId {
			return repo_errors.ErrNotFound
		}

		return nil
	})
}

type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// resolveQuote moves a pending quote to a terminal status after the ownership
// check passes. Quotes are immutable once they leave pending.
func (r *QuoteRepo) resolveQuote(ctx context.Context, quoteId string, newStatus string, checkOwner func(*entity.Quote, queryer) error) error {
	uuidForm, err := uuid.Parse(quoteId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	lockSql, args, _ := r.SqlBuilder.
		Select(quoteColumns).
		From("job_quotes").
		Where("id = ?", uuidForm).
		Suffix("FOR UPDATE").
		ToSql()

	var quote entity.Quote
	if err = tx.GetContext(ctx, &quote, lockSql, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrNotFound
		}

		return err
	}

	if err = checkOwner(&quote, tx); err != nil {
		return err
	}

	if quote.Status != common.QuotePending {
		return repo_errors.ErrAlreadyResolved
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("job_quotes").
		Set("status", newStatus).
		Set("responded_at", time.Now().UTC()).
		Where("id = ?", uuidForm).
		ToSql()

	if _, err = tx.ExecContext(ctx, updateSql, args...); err != nil {
		return err
	}

	return tx.Commit()
}
