package routes

import (
	"github.com/gin-gonic/gin"

	"venue_backoffice/internal/adapter/http/handlers"
)

const (
	PathLeases     = "/leases"
	PathInvoices   = "/invoices"
	PathQuotations = "/quotations"
	PathDeposits   = "/deposits"
)

func addLeaseRoutes(rg *gin.RouterGroup, h *handlers.LeaseHandler) {
	if h == nil {
		return
	}
	leases := rg.Group(PathLeases)
	{
		leases.POST("", h.CreateLease)
		leases.GET("", h.ListLeases)
		leases.GET("/:id", h.GetLease)
		leases.GET("/:id/actions", h.GetAllowedActions)
		leases.GET("/:id/audit", h.GetHistory)
		leases.PATCH("/:id/quote", h.Quote)
		leases.PATCH("/:id/option", h.Option)
		leases.PATCH("/:id/confirm", h.Confirm)
		leases.PATCH("/:id/complete", h.Complete)
		leases.PATCH("/:id/cancel", h.Cancel)
		leases.PATCH("/:id/archive", h.Archive)
		leases.POST("/:id/metrics", h.AddUtilityMetric)
		leases.GET("/:id/metrics", h.ListUtilityMetrics)
	}
}

func addInvoiceRoutes(rg *gin.RouterGroup, h *handlers.InvoiceHandler, payment *handlers.InvoicePaymentHandler) {
	if h == nil {
		return
	}
	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.GET("/:id/actions", h.GetAllowedActions)
		invoices.GET("/:id/audit", h.GetHistory)
		invoices.PATCH("/:id/open", h.Open)
		invoices.PATCH("/:id/pay", h.Pay)
		invoices.PATCH("/:id/uncollect", h.Uncollect)
		invoices.PATCH("/:id/void", h.Void)
		if payment != nil {
			invoices.POST("/:id/payment", payment.PayInvoice)
		}
	}
}

func addQuotationRoutes(rg *gin.RouterGroup, h *handlers.QuotationHandler) {
	if h == nil {
		return
	}
	quotations := rg.Group(PathQuotations)
	{
		quotations.POST("", h.CreateQuotation)
		quotations.GET("", h.ListQuotations)
		quotations.POST("/expire-overdue", h.ExpireOverdue)
		quotations.GET("/:id", h.GetQuotation)
		quotations.GET("/:id/actions", h.GetAllowedActions)
		quotations.GET("/:id/audit", h.GetHistory)
		quotations.PATCH("/:id/open", h.Open)
		quotations.PATCH("/:id/accept", h.Accept)
		quotations.PATCH("/:id/decline", h.Decline)
		quotations.PATCH("/:id/expire", h.Expire)
	}
}

func addDepositRoutes(rg *gin.RouterGroup, h *handlers.DepositHandler) {
	if h == nil {
		return
	}
	deposits := rg.Group(PathDeposits)
	{
		deposits.POST("", h.CreateDeposit)
		deposits.GET("", h.ListDeposits)
		deposits.GET("/:id", h.GetDeposit)
		deposits.GET("/:id/actions", h.GetAllowedActions)
		deposits.GET("/:id/audit", h.GetHistory)
		deposits.PATCH("/:id/pay", h.Pay)
		deposits.PATCH("/:id/refund-partial", h.RefundPartial)
		deposits.PATCH("/:id/refund-full", h.RefundFull)
		deposits.PATCH("/:id/withdraw", h.Withdraw)
		deposits.PATCH("/:id/due-refund", h.DueRefund)
	}
}
