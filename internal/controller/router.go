package controller

import (
	"cleaning-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newJobRoutesHandler(api, services, validate)
	newQuoteRoutesHandler(api, services, validate)
	newAssignmentRoutesHandler(api, services, validate)
	newTransactionRoutesHandler(api, services)
	newJanitorRoutesHandler(api, services, validate)
	newMessageRoutesHandler(api, services, validate)
}
