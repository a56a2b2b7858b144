package controller

import (
	"net/http"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type janitorRoutesHandler struct {
	janitorService service.Janitor
	validate       *validator.Validate
}

func newJanitorRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *janitorRoutesHandler {
	h := &janitorRoutesHandler{janitorService: services.Janitor, validate: v}

	outer.POST("/janitors", h.PostJanitor)
	outer.GET("/janitors", h.GetJanitors)
	outer.GET("/janitors/me", h.GetJanitorProfile)
	outer.PATCH("/janitors/me", h.PatchJanitorProfile)
	outer.GET("/janitors/:janitorId", h.GetJanitor)
	outer.POST("/janitors/:janitorId/approve", h.ApproveJanitor)
	outer.POST("/janitors/:janitorId/suspend", h.SuspendJanitor)
	outer.POST("/janitors/:janitorId/deactivate", h.DeactivateJanitor)

	return h
}

type postJanitorInput struct {
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=200"`
	Phone           string `json:"phone" validate:"required,max=30"`
	Bio             string `json:"bio" validate:"max=2000"`
	HourlyRateCents int    `json:"hourlyRateCents" validate:"gte=0"`
}

// /janitors
func (h *janitorRoutesHandler) PostJanitor(c echo.Context) error {
	caller, ok := requireUserId(c)
	if !ok {
		return nil
	}

	var input postJanitorInput
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

	model := &entity.CreateJanitorInput{
		UserId: caller, FirstName: input.FirstName, LastName: input.LastName,
		Email: input.Email, Phone: input.Phone, Bio: strPtr(input.Bio),
		HourlyRateCents: input.HourlyRateCents,
	}

	janitor, err := h.janitorService.RegisterJanitor(c.Request().Context(), model)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusCreated, janitor); e != nil {
		return e
	}

	return nil
}

type getJanitorsInput struct {
	Limit    int32    `query:"limit" validate:"gte=0,lte=100"`
	Offset   int32    `query:"offset" validate:"gte=0"`
	Statuses []string `query:"status" validate:"dive,oneof=pending_verification active inactive suspended"`
}

// /janitors
func (h *janitorRoutesHandler) GetJanitors(c echo.Context) error {
	input := getJanitorsInput{Limit: defaultLimit, Offset: defaultOffset, Statuses: make([]string, 0)}
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
	janitors, err := h.janitorService.ListJanitors(c.Request().Context(), input.Statuses, pg)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, janitors); e != nil {
		return e
	}

	return nil
}

// /janitors/me
func (h *janitorRoutesHandler) GetJanitorProfile(c echo.Context) error {
	caller, ok := requireUserId(c)
	if !ok {
		return nil
	}

	janitor, err := h.janitorService.GetJanitorProfile(c.Request().Context(), caller)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, janitor); e != nil {
		return e
	}

	return nil
}

type patchJanitorInput struct {
	Phone           *string `json:"phone" validate:"omitempty,max=30"`
	Bio             *string `json:"bio" validate:"omitempty,max=2000"`
	HourlyRateCents *int    `json:"hourlyRateCents" validate:"omitempty,gte=0"`
}

// /janitors/me
func (h *janitorRoutesHandler) PatchJanitorProfile(c echo.Context) error {
	caller, ok := requireUserId(c)
	if !ok {
		return nil
	}

	var input patchJanitorInput
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

	patch := &entity.UpdateJanitorProfileInput{
		Phone: input.Phone, Bio: input.Bio, HourlyRateCents: input.HourlyRateCents,
	}

	janitor, err := h.janitorService.UpdateJanitorProfile(c.Request().Context(), caller, patch)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, janitor); e != nil {
		return e
	}

	return nil
}

// /janitors/:janitorId
func (h *janitorRoutesHandler) GetJanitor(c echo.Context) error {
	janitor, err := h.janitorService.GetJanitor(c.Request().Context(), c.Param("janitorId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, janitor); e != nil {
		return e
	}

	return nil
}

// /janitors/:janitorId/approve
func (h *janitorRoutesHandler) ApproveJanitor(c echo.Context) error {
	if err := h.janitorService.ApproveJanitor(c.Request().Context(), c.Param("janitorId")); err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /janitors/:janitorId/suspend
func (h *janitorRoutesHandler) SuspendJanitor(c echo.Context) error {
	if err := h.janitorService.SuspendJanitor(c.Request().Context(), c.Param("janitorId")); err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /janitors/:janitorId/deactivate
func (h *janitorRoutesHandler) DeactivateJanitor(c echo.Context) error {
	if err := h.janitorService.DeactivateJanitor(c.Request().Context(), c.Param("janitorId")); err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}
