package controller

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"cleaning-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 20
	defaultOffset = 0

	orgIdHeader  = "X-Org-Id"
	userIdHeader = "X-User-Id"
)

type errorResponse struct {
	Reason string `json:"reason"`
}

// orgId returns the tenant id of the calling company, empty when absent.
func orgId(c echo.Context) string {
	return c.Request().Header.Get(orgIdHeader)
}

// userId returns the id of the calling user, empty when absent.
func userId(c echo.Context) string {
	return c.Request().Header.Get(userIdHeader)
}

func requireOrgId(c echo.Context) (string, bool) {
	id := orgId(c)
	if id == "" {
		_ = c.JSON(http.StatusUnauthorized, errorResponse{"Missing " + orgIdHeader + " header"})
		return "", false
	}

	return id, true
}

func requireUserId(c echo.Context) (string, bool) {
	id := userId(c)
	if id == "" {
		_ = c.JSON(http.StatusUnauthorized, errorResponse{"Missing " + userIdHeader + " header"})
		return "", false
	}

	return id, true
}

// writeServiceError maps a service error onto an HTTP status. Errors outside
// the known kinds are reported as internal and returned for the logger.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case service.IsNotFound(err):
		if e := c.JSON(http.StatusNotFound, errorResponse{err.Error()}); e != nil {
			return e
		}
	case service.IsValidation(err):
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	case service.IsInvalidState(err):
		if e := c.JSON(http.StatusUnprocessableEntity, errorResponse{err.Error()}); e != nil {
			return e
		}
	case service.IsConflict(err):
		if e := c.JSON(http.StatusConflict, errorResponse{err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	return nil
}

func getAllErrorMessages(err error) string {
	var builder strings.Builder
	for _, fe := range err.(validator.ValidationErrors) {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	s, i := "", int32(0)
	if fe.Type() == reflect.TypeOf(s) {
		return getMessageForString(fe)
	}

	if fe.Type() == reflect.TypeOf(i) || fe.Type() == reflect.TypeOf(0) {
		return getMessageForInt(fe)
	}

	return "incorrect value passed"
}

func getMessageForInt(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	}

	return "incorrect value passed"
}
