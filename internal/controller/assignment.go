package controller

import (
	"net/http"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type assignmentRoutesHandler struct {
	assignmentService service.Assignment
	validate          *validator.Validate
}

func newAssignmentRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *assignmentRoutesHandler {
	h := &assignmentRoutesHandler{assignmentService: services.Assignment, validate: v}

	outer.GET("/assignments/my", h.GetWorkerAssignments)
	outer.GET("/assignments/:assignmentId", h.GetAssignment)
	outer.POST("/assignments/:assignmentId/accept", h.AcceptAssignment)
	outer.POST("/assignments/:assignmentId/start", h.StartAssignment)
	outer.POST("/assignments/:assignmentId/complete", h.CompleteAssignment)
	outer.POST("/assignments/:assignmentId/cancel", h.CancelAssignment)
	outer.POST("/assignments/:assignmentId/rate", h.RateAssignment)

	return h
}

type listAssignmentsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /assignments/my
func (h *assignmentRoutesHandler) GetWorkerAssignments(c echo.Context) error {
	worker, ok := requireUserId(c)
	if !ok {
		return nil
	}

	input := listAssignmentsInput{Limit: defaultLimit, Offset: defaultOffset}
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
	assignments, err := h.assignmentService.ListWorkerAssignments(c.Request().Context(), worker, pg)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, assignments); e != nil {
		return e
	}

	return nil
}

// /assignments/:assignmentId
func (h *assignmentRoutesHandler) GetAssignment(c echo.Context) error {
	worker, ok := requireUserId(c)
	if !ok {
		return nil
	}

	assignment, err := h.assignmentService.GetAssignment(c.Request().Context(), worker, c.Param("assignmentId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, assignment); e != nil {
		return e
	}

	return nil
}

// /assignments/:assignmentId/accept
func (h *assignmentRoutesHandler) AcceptAssignment(c echo.Context) error {
	worker, ok := requireUserId(c)
	if !ok {
		return nil
	}

	assignment, err := h.assignmentService.AcceptAssignment(c.Request().Context(), worker, c.Param("assignmentId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, assignment); e != nil {
		return e
	}

	return nil
}

// /assignments/:assignmentId/start
func (h *assignmentRoutesHandler) StartAssignment(c echo.Context) error {
	worker, ok := requireUserId(c)
	if !ok {
		return nil
	}

	assignment, err := h.assignmentService.StartAssignment(c.Request().Context(), worker, c.Param("assignmentId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, assignment); e != nil {
		return e
	}

	return nil
}

type completeAssignmentInput struct {
	ReportedHours int    `json:"reportedHours" validate:"required,gt=0"`
	Notes         string `json:"notes" validate:"max=2000"`
}

// /assignments/:assignmentId/complete
func (h *assignmentRoutesHandler) CompleteAssignment(c echo.Context) error {
	worker, ok := requireUserId(c)
	if !ok {
		return nil
	}

	var input completeAssignmentInput
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

	assignment, err := h.assignmentService.CompleteAssignment(
		c.Request().Context(), worker, c.Param("assignmentId"), input.ReportedHours, strPtr(input.Notes))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, assignment); e != nil {
		return e
	}

	return nil
}

// /assignments/:assignmentId/cancel
func (h *assignmentRoutesHandler) CancelAssignment(c echo.Context) error {
	worker, ok := requireUserId(c)
	if !ok {
		return nil
	}

	assignment, err := h.assignmentService.CancelAssignment(c.Request().Context(), worker, c.Param("assignmentId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, assignment); e != nil {
		return e
	}

	return nil
}

type rateAssignmentInput struct {
	Rating int `json:"rating" validate:"required,gte=1,lte=5"`
}

// /assignments/:assignmentId/rate
// A company caller rates the worker's job; a worker caller rates the company.
func (h *assignmentRoutesHandler) RateAssignment(c echo.Context) error {
	var input rateAssignmentInput
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

	var err error
	if callerOrg := orgId(c); callerOrg != "" {
		err = h.assignmentService.RateAssignmentByCompany(c.Request().Context(), callerOrg, c.Param("assignmentId"), input.Rating)
	} else {
		worker, ok := requireUserId(c)
		if !ok {
			return nil
		}
		err = h.assignmentService.RateAssignmentByWorker(c.Request().Context(), worker, c.Param("assignmentId"), input.Rating)
	}
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}
