package controller

import (
	"net/http"
	"strconv"

	"cleaning-marketplace-api/internal/entity"
	"cleaning-marketplace-api/internal/service"

	"github.com/labstack/echo"
)

type transactionRoutesHandler struct {
	transactionService service.Transaction
}

func newTransactionRoutesHandler(outer *echo.Group, services *service.Services) *transactionRoutesHandler {
	h := &transactionRoutesHandler{transactionService: services.Transaction}

	outer.GET("/transactions", h.GetTransactions)
	outer.GET("/assignments/:assignmentId/transaction", h.GetAssignmentTransaction)
	outer.POST("/transactions/:transactionId/company-paid", h.MarkCompanyPaid)
	outer.POST("/transactions/:transactionId/worker-paid", h.MarkWorkerPaid)

	return h
}

// /transactions
func (h *transactionRoutesHandler) GetTransactions(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	pg := entity.NewPaginationInput(limit, offset)
	transactions, err := h.transactionService.ListTransactions(c.Request().Context(), pg)
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, transactions); e != nil {
		return e
	}

	return nil
}

// /assignments/:assignmentId/transaction
func (h *transactionRoutesHandler) GetAssignmentTransaction(c echo.Context) error {
	transaction, err := h.transactionService.GetAssignmentTransaction(c.Request().Context(), c.Param("assignmentId"))
	if err != nil {
		return writeServiceError(c, err)
	}
	if e := c.JSON(http.StatusOK, transaction); e != nil {
		return e
	}

	return nil
}

// /transactions/:transactionId/company-paid
func (h *transactionRoutesHandler) MarkCompanyPaid(c echo.Context) error {
	if err := h.transactionService.MarkCompanyPaid(c.Request().Context(), c.Param("transactionId")); err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /transactions/:transactionId/worker-paid
func (h *transactionRoutesHandler) MarkWorkerPaid(c echo.Context) error {
	if err := h.transactionService.MarkWorkerPaid(c.Request().Context(), c.Param("transactionId")); err != nil {
		return writeServiceError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}
