package request

import (
	"strings"

	"venue_backoffice/internal/usecase"
)

type CreateQuotationRequest struct {
	TenantID string  `json:"tenant_id" binding:"required"`
	LeaseID  string  `json:"lease_id"`
	Amount   float64 `json:"amount" binding:"required"`
}

func (r CreateQuotationRequest) ToCommand() usecase.CreateQuotation {
	return usecase.CreateQuotation{
		TenantID: strings.TrimSpace(r.TenantID),
		LeaseID:  strings.TrimSpace(r.LeaseID),
		Amount:   r.Amount,
	}
}

type CreateDepositRequest struct {
	TenantID string  `json:"tenant_id" binding:"required"`
	LeaseID  string  `json:"lease_id"`
	Amount   float64 `json:"amount" binding:"required"`
}

func (r CreateDepositRequest) ToCommand() usecase.CreateDeposit {
	return usecase.CreateDeposit{
		TenantID: strings.TrimSpace(r.TenantID),
		LeaseID:  strings.TrimSpace(r.LeaseID),
		Amount:   r.Amount,
	}
}
