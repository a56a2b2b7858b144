package controller

import (
	"net/http"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type quoteRoutesHandler struct {
	quoteService service.Quote
	validate     *validator.Validate
}

func newQuoteRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *quoteRoutesHandler {
	h := &quoteRoutesHandler{quoteService: services.Quote, validate: v}

	outer.POST("/jobs/:jobId/quotes", h.PostQuote)
	outer.GET("/jobs/:jobId/quotes", h.GetJobQuotes)
	outer.GET("/quotes/my", h.GetWorkerQuotes)
	outer.POST("/quotes/:quoteId/accept", h.AcceptQuote)
	outer.POST("/quotes/:quoteId/reject", h.RejectQuote)
	outer.POST("/quotes/:quoteId/withdraw", h.WithdrawQuote)

	return h
}

type postQuoteInput struct {
	AmountCents    int    `json:"amountCents" validate:"required,gt=0"`
	Message        string `json:"message" validate:"max=2000"`
	EstimatedHours int    `json:"estimatedHours" validate:"gte=0"`
	AvailableDate  string `json:"availableDate"`
}

// /jobs/:jobId/quotes
func (h *quoteRoutesHandler) PostQuote(c echo.Context) error {
	worker, ok := requireUserId(c)
	if !ok {
		return nil
	}

	var input postQuoteInput
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

	availableDate, ok := parseTimePtr(input.AvailableDate)
	if !ok {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Timestamps must be RFC3339"}); e != nil {
			return e
		}

		return nil
	}

	model := &entity.CreateQuoteInput{
		JobId: c.Param("jobId"), WorkerId: worker, AmountCents: input.AmountCents,
		Message: strPtr(input.Message), AvailableDate: availableDate,
	}
	if input.EstimatedHours > 0 {
		model.EstimatedHours = &input.EstimatedHours
	}

	quote, err := h.quoteService.SubmitQuote(c.Request().Context(), model)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusCreated, quote); e != nil {
		return e
	}

	return nil
}

type listQuotesInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /jobs/:jobId/quotes
func (h *quoteRoutesHandler) GetJobQuotes(c echo.Context) error {
	callerOrg, ok := requireOrgId(c)
	if !ok {
		return nil
	}

	input := listQuotesInput{Limit: defaultLimit, Offset: defaultOffset}
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
	quotes, err := h.quoteService.ListJobQuotes(c.Request().Context(), callerOrg, c.Param("jobId"), pg)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, quotes); e != nil {
		return e
	}

	return nil
}

// /quotes/my
func (h *quoteRoutesHandler) GetWorkerQuotes(c echo.Context) error {
	worker, ok := requireUserId(c)
	if !ok {
		return nil
	}

	input := listQuotesInput{Limit: defaultLimit, Offset: defaultOffset}
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
	quotes, err := h.quoteService.ListWorkerQuotes(c.Request().Context(), worker, pg)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, quotes); e != nil {
		return e
	}

	return nil
}

// /quotes/:quoteId/accept
func (h *quoteRoutesHandler) AcceptQuote(c echo.Context) error {
	callerOrg, ok := requireOrgId(c)
	if !ok {
		return nil
	}

	assignment, err := h.quoteService.AcceptQuote(c.Request().Context(), callerOrg, c.Param("quoteId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, assignment); e != nil {
		return e
	}

	return nil
}

// /quotes/:quoteId/reject
func (h *quoteRoutesHandler) RejectQuote(c echo.Context) error {
	callerOrg, ok := requireOrgId(c)
	if !ok {
		return nil
	}

	if err := h.quoteService.RejectQuote(c.Request().Context(), callerOrg, c.Param("quoteId")); err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /quotes/:quoteId/withdraw
func (h *quoteRoutesHandler) WithdrawQuote(c echo.Context) error {
	worker, ok := requireUserId(c)
	if !ok {
		return nil
	}

	if err := h.quoteService.WithdrawQuote(c.Request().Context(), worker, c.Param("quoteId")); err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}
