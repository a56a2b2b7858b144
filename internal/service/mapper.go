package service

import (
	"time"

	"cleaning-marketplace-api/internal/entity"
)

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(time.RFC3339)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func mapJob(j *entity.Job) *entity.JobOutputModel {
	return &entity.JobOutputModel{
		Id:               j.Id.String(),
		Title:            j.Title,
		Description:      derefString(j.Description),
		ServiceType:      derefString(j.ServiceType),
		Location:         derefString(j.Location),
		StartTime:        formatTime(j.StartTime),
		EndTime:          formatTime(j.EndTime),
		BudgetCents:      j.BudgetCents,
		Currency:         j.Currency,
		BiddingEndsAt:    formatTime(j.BiddingEndsAt),
		IsBroadcast:      j.IsBroadcast,
		Status:           j.Status,
		AssignedWorkerId: derefString(j.AssignedWorkerId),
		FinalAmountCents: j.FinalAmountCents,
		PlatformFeeCents: j.PlatformFeeCents,
		CreatedAt:        j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        j.UpdatedAt.Format(time.RFC3339),
	}
}

func mapJobs(jobs []entity.Job) []entity.JobOutputModel {
	s := make([]entity.JobOutputModel, 0)
	for _, job := range jobs {
		s = append(s, *mapJob(&job))
	}

	return s
}

func mapQuote(q *entity.Quote) *entity.QuoteOutputModel {
	return &entity.QuoteOutputModel{
		Id:          q.Id.String(),
		JobId:       q.JobId.String(),
		WorkerId:    q.WorkerId,
		AmountCents: q.AmountCents,
		Message:     derefString(q.Message),
		Status:      q.Status,
		SubmittedAt: q.SubmittedAt.Format(time.RFC3339),
		RespondedAt: formatTime(q.RespondedAt),
	}
}

func mapQuotes(quotes []entity.Quote) []entity.QuoteOutputModel {
	s := make([]entity.QuoteOutputModel, 0)
	for _, quote := range quotes {
		s = append(s, *mapQuote(&quote))
	}

	return s
}

func mapAssignment(a *entity.Assignment) *entity.AssignmentOutputModel {
	return &entity.AssignmentOutputModel{
		Id:                  a.Id.String(),
		JobId:               a.JobId.String(),
		WorkerId:            a.WorkerId,
		QuoteId:             a.QuoteId.String(),
		Status:              a.Status,
		FinalAmountCents:    a.FinalAmountCents,
		WorkerEarningsCents: a.WorkerEarningsCents,
		PlatformFeeCents:    a.PlatformFeeCents,
		StartedAt:           formatTime(a.StartedAt),
		CompletedAt:         formatTime(a.CompletedAt),
		ReportedHours:       a.ReportedHours,
		AssignedAt:          a.AssignedAt.Format(time.RFC3339),
	}
}

func mapAssignments(assignments []entity.Assignment) []entity.AssignmentOutputModel {
	s := make([]entity.AssignmentOutputModel, 0)
	for _, assignment := range assignments {
		s = append(s, *mapAssignment(&assignment))
	}

	return s
}

func mapTransaction(t *entity.PlatformTransaction) *entity.TransactionOutputModel {
	return &entity.TransactionOutputModel{
		Id:                  t.Id.String(),
		AssignmentId:        t.AssignmentId.String(),
		CompanyPaymentCents: t.CompanyPaymentCents,
		WorkerPaymentCents:  t.WorkerPaymentCents,
		PlatformFeeCents:    t.PlatformFeeCents,
		CompanyPaid:         t.CompanyPaid,
		WorkerPaid:          t.WorkerPaid,
		CreatedAt:           t.CreatedAt.Format(time.RFC3339),
	}
}

func mapTransactions(transactions []entity.PlatformTransaction) []entity.TransactionOutputModel {
	s := make([]entity.TransactionOutputModel, 0)
	for _, transaction := range transactions {
		s = append(s, *mapTransaction(&transaction))
	}

	return s
}

func mapJanitor(j *entity.Janitor) *entity.JanitorOutputModel {
	return &entity.JanitorOutputModel{
		Id:              j.Id.String(),
		UserId:          j.UserId,
		FirstName:       j.FirstName,
		LastName:        j.LastName,
		Email:           j.Email,
		HourlyRateCents: j.HourlyRateCents,
		Status:          j.Status,
		CompletedJobs:   j.CompletedJobs,
		JoinedAt:        j.JoinedAt.Format(time.RFC3339),
	}
}

func mapJanitors(janitors []entity.Janitor) []entity.JanitorOutputModel {
	s := make([]entity.JanitorOutputModel, 0)
	for _, janitor := range janitors {
		s = append(s, *mapJanitor(&janitor))
	}

	return s
}

func mapMessage(m *entity.Message) *entity.MessageOutputModel {
	return &entity.MessageOutputModel{
		Id:         m.Id.String(),
		SenderId:   m.SenderId,
		SenderType: m.SenderType,
		Body:       m.Body,
		ReadAt:     formatTime(m.ReadAt),
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}

func mapMessages(messages []entity.Message) []entity.MessageOutputModel {
	s := make([]entity.MessageOutputModel, 0)
	for _, message := range messages {
		s = append(s, *mapMessage(&message))
	}

	return s
}
