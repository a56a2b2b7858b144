package controller

import (
	"net/http"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type messageRoutesHandler struct {
	messageService service.Message
	validate       *validator.Validate
}

func newMessageRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *messageRoutesHandler {
	h := &messageRoutesHandler{messageService: services.Message, validate: v}

	outer.POST("/assignments/:assignmentId/messages", h.PostMessage)
	outer.GET("/assignments/:assignmentId/messages", h.GetMessages)
	outer.POST("/messages/:messageId/read", h.MarkMessageRead)
	outer.GET("/messages/unread-count", h.GetUnreadCount)

	return h
}

type unreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

type postMessageInput struct {
	Body        string `json:"body" validate:"required,max=5000"`
	Attachments string `json:"attachments" validate:"max=5000"`
}

// /assignments/:assignmentId/messages
func (h *messageRoutesHandler) PostMessage(c echo.Context) error {
	caller, ok := requireUserId(c)
	if !ok {
		return nil
	}

	var input postMessageInput
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

	message, err := h.messageService.SendMessage(
		c.Request().Context(), caller, orgId(c), c.Param("assignmentId"), input.Body, strPtr(input.Attachments))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusCreated, message); e != nil {
		return e
	}

	return nil
}

// /messages/:messageId/read
func (h *messageRoutesHandler) MarkMessageRead(c echo.Context) error {
	caller, ok := requireUserId(c)
	if !ok {
		return nil
	}

	if err := h.messageService.MarkMessageRead(c.Request().Context(), caller, orgId(c), c.Param("messageId")); err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /messages/unread-count
func (h *messageRoutesHandler) GetUnreadCount(c echo.Context) error {
	caller, ok := requireUserId(c)
	if !ok {
		return nil
	}

	count, err := h.messageService.UnreadMessageCount(c.Request().Context(), caller)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, unreadCountResponse{count}); e != nil {
		return e
	}

	return nil
}

type listMessagesInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /assignments/:assignmentId/messages
func (h *messageRoutesHandler) GetMessages(c echo.Context) error {
	caller, ok := requireUserId(c)
	if !ok {
		return nil
	}

	input := listMessagesInput{Limit: defaultLimit, Offset: defaultOffset}
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
	messages, err := h.messageService.ListMessages(c.Request().Context(), caller, orgId(c), c.Param("assignmentId"), pg)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, messages); e != nil {
		return e
	}

	return nil
}
