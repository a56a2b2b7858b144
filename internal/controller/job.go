package controller

import (
	"net/http"
	"time"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type jobRoutesHandler struct {
	jobService service.Job
	validate   *validator.Validate
}

func newJobRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *jobRoutesHandler {
	h := &jobRoutesHandler{jobService: services.Job, validate: v}

	outer.POST("/jobs", h.PostJob)
	outer.GET("/jobs", h.GetJobs)
	outer.GET("/jobs/marketplace", h.BrowseJobs)
	outer.GET("/jobs/:jobId", h.GetJob)
	outer.PATCH("/jobs/:jobId", h.PatchJob)
	outer.DELETE("/jobs/:jobId", h.DeleteJob)
	outer.POST("/jobs/:jobId/cancel", h.CancelJob)
	outer.POST("/jobs/:jobId/request-quotes", h.RequestQuotes)

	return h
}

// parseTimePtr parses an optional RFC3339 timestamp, reporting whether the
// value was both present and well-formed.
func parseTimePtr(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}

	return &t, true
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

type postJobInput struct {
	Title          string `json:"title" validate:"required,max=200"`
	Description    string `json:"description" validate:"max=2000"`
	ServiceType    string `json:"serviceType" validate:"max=100"`
	Location       string `json:"location" validate:"max=500"`
	Latitude       string `json:"latitude" validate:"max=20"`
	Longitude      string `json:"longitude" validate:"max=20"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	BudgetCents    int    `json:"budgetCents" validate:"gte=0"`
	Currency       string `json:"currency" validate:"max=3"`
	BiddingEndsAt  string `json:"biddingEndsAt"`
	AutoAssign     bool   `json:"autoAssign"`
	PlatformFeeBps int    `json:"platformFeeBps" validate:"gte=0,lte=10000"`
	Publish        bool   `json:"publish"`
}

// /jobs
func (h *jobRoutesHandler) PostJob(c echo.Context) error {
	creatorOrg, ok := requireOrgId(c)
	if !ok {
		return nil
	}
	creator, ok := requireUserId(c)
	if !ok {
		return nil
	}

	var input postJobInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	startTime, ok1 := parseTimePtr(input.StartTime)
	endTime, ok2 := parseTimePtr(input.EndTime)
	biddingEndsAt, ok3 := parseTimePtr(input.BiddingEndsAt)
	if !ok1 || !ok2 || !ok3 {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Timestamps must be RFC3339"}); e != nil {
			return e
		}

		return nil
	}

	status := "draft"
	if input.Publish {
		status = "open"
	}

	model := &entity.CreateJobInput{
		OrgId: creatorOrg, CreatedBy: creator, Title: input.Title,
		Description: strPtr(input.Description), ServiceType: strPtr(input.ServiceType),
		Location: strPtr(input.Location), Latitude: strPtr(input.Latitude), Longitude: strPtr(input.Longitude),
		StartTime: startTime, EndTime: endTime, BudgetCents: input.BudgetCents,
		Currency: input.Currency, BiddingEndsAt: biddingEndsAt,
		AutoAssign: input.AutoAssign, Status: status, PlatformFeeBps: input.PlatformFeeBps,
	}

	job, err := h.jobService.CreateJob(c.Request().Context(), model)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusCreated, job); e != nil {
		return e
	}

	return nil
}

type getJobsInput struct {
	Limit    int32    `query:"limit" validate:"gte=0,lte=100"`
	Offset   int32    `query:"offset" validate:"gte=0"`
	Statuses []string `query:"status" validate:"dive,oneof=draft open rfq assigned in_progress completed canceled"`
	Search   string   `query:"search" validate:"max=200"`
}

// /jobs
func (h *jobRoutesHandler) GetJobs(c echo.Context) error {
	callerOrg, ok := requireOrgId(c)
	if !ok {
		return nil
	}

	input := getJobsInput{Limit: defaultLimit, Offset: defaultOffset, Statuses: make([]string, 0)}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	jobs, err := h.jobService.ListJobs(c.Request().Context(), callerOrg, input.Statuses, input.Search, pg)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, jobs); e != nil {
		return e
	}

	return nil
}

type browseJobsInput struct {
	Limit          int32  `query:"limit" validate:"gte=0,lte=100"`
	Offset         int32  `query:"offset" validate:"gte=0"`
	ServiceType    string `query:"service_type" validate:"max=100"`
	MinBudgetCents int    `query:"min_budget_cents" validate:"gte=0"`
	MaxBudgetCents int    `query:"max_budget_cents" validate:"gte=0"`
}

// /jobs/marketplace
func (h *jobRoutesHandler) BrowseJobs(c echo.Context) error {
	worker, ok := requireUserId(c)
	if !ok {
		return nil
	}

	input := browseJobsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	filter := &entity.BrowseJobsInput{ServiceType: strPtr(input.ServiceType)}
	if input.MinBudgetCents > 0 {
		filter.MinBudgetCents = &input.MinBudgetCents
	}
	if input.MaxBudgetCents > 0 {
		filter.MaxBudgetCents = &input.MaxBudgetCents
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	jobs, err := h.jobService.BrowseJobs(c.Request().Context(), worker, filter, pg)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, jobs); e != nil {
		return e
	}

	return nil
}

// /jobs/:jobId
func (h *jobRoutesHandler) GetJob(c echo.Context) error {
	callerOrg, ok := requireOrgId(c)
	if !ok {
		return nil
	}

	job, err := h.jobService.GetJob(c.Request().Context(), callerOrg, c.Param("jobId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, job); e != nil {
		return e
	}

	return nil
}

type patchJobInput struct {
	Title         *string `json:"title" validate:"omitempty,max=200"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
	ServiceType   *string `json:"serviceType" validate:"omitempty,max=100"`
	Location      *string `json:"location" validate:"omitempty,max=500"`
	Latitude      *string `json:"latitude" validate:"omitempty,max=20"`
	Longitude     *string `json:"longitude" validate:"omitempty,max=20"`
	StartTime     *string `json:"startTime"`
	EndTime       *string `json:"endTime"`
	BudgetCents   *int    `json:"budgetCents" validate:"omitempty,gte=0"`
	Currency      *string `json:"currency" validate:"omitempty,max=3"`
	BiddingEndsAt *string `json:"biddingEndsAt"`
}

// /jobs/:jobId
func (h *jobRoutesHandler) PatchJob(c echo.Context) error {
	callerOrg, ok := requireOrgId(c)
	if !ok {
		return nil
	}

	var input patchJobInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	patch := &entity.UpdateJobInput{
		Title: input.Title, Description: input.Description, ServiceType: input.ServiceType,
		Location: input.Location, Latitude: input.Latitude, Longitude: input.Longitude,
		BudgetCents: input.BudgetCents, Currency: input.Currency,
	}
	for _, pair := range []struct {
		raw  *string
		dest **time.Time
	}{
		{input.StartTime, &patch.StartTime},
		{input.EndTime, &patch.EndTime},
		{input.BiddingEndsAt, &patch.BiddingEndsAt},
	} {
		if pair.raw == nil {
			continue
		}
		t, ok := parseTimePtr(*pair.raw)
		if !ok {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Timestamps must be RFC3339"}); e != nil {
				return e
			}

			return nil
		}
		*pair.dest = t
	}

	job, err := h.jobService.UpdateJob(c.Request().Context(), callerOrg, c.Param("jobId"), patch)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, job); e != nil {
		return e
	}

	return nil
}

// /jobs/:jobId
func (h *jobRoutesHandler) DeleteJob(c echo.Context) error {
	callerOrg, ok := requireOrgId(c)
	if !ok {
		return nil
	}

	if err := h.jobService.DeleteJob(c.Request().Context(), callerOrg, c.Param("jobId")); err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type cancelJobInput struct {
	Reason string `json:"reason" validate:"max=500"`
}

// /jobs/:jobId/cancel
func (h *jobRoutesHandler) CancelJob(c echo.Context) error {
	callerOrg, ok := requireOrgId(c)
	if !ok {
		return nil
	}

	// the body is optional; cancel without a reason is a bare POST
	var input cancelJobInput
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&input); err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
				return e
			}

			return err
		}

		if err := h.validate.Struct(input); err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
				return e
			}

			return err
		}
	}

	job, err := h.jobService.CancelJob(c.Request().Context(), callerOrg, c.Param("jobId"), strPtr(input.Reason))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, job); e != nil {
		return e
	}

	return nil
}

type requestQuotesInput struct {
	WorkerIds []string `json:"workerIds" validate:"dive,required,max=100"`
	Broadcast bool     `json:"broadcast"`
}

// /jobs/:jobId/request-quotes
func (h *jobRoutesHandler) RequestQuotes(c echo.Context) error {
	callerOrg, ok := requireOrgId(c)
	if !ok {
		return nil
	}

	input := requestQuotesInput{WorkerIds: make([]string, 0)}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	err := h.jobService.RequestQuotes(c.Request().Context(), callerOrg, c.Param("jobId"), input.WorkerIds, input.Broadcast)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}
