package dto

import (
	"time"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/core/types"
	"kassa/internal/domain/report"
)

const dateLayout = "2006-01-02"

// --- Requests ---

// PaymentLineRequest is one sales line in a report submission.
type PaymentLineRequest struct {
	MethodID string      `json:"methodId" binding:"required"`
	Amount   types.Money `json:"amount"`
}

// MoneyLineRequest is one income or expense line in a submission.
type MoneyLineRequest struct {
	CategoryID  *string     `json:"categoryId"`
	AccountID   string      `json:"accountId" binding:"required"`
	Amount      types.Money `json:"amount"`
	Description *string     `json:"description"`
}

// CreateReportRequest is the full end-of-shift submission.
type CreateReportRequest struct {
	Date       string      `json:"date" binding:"required"`
	LocationID string      `json:"locationId" binding:"required"`
	TotalSales types.Money `json:"totalSales"`
	CreatedBy  *string     `json:"createdBy"`
	Notes      *string     `json:"notes"`

	Payments []PaymentLineRequest `json:"payments"`
	Incomes  []MoneyLineRequest   `json:"incomes"`
	Expenses []MoneyLineRequest   `json:"expenses"`

	CashActual *types.Money `json:"cashActual"`
}

// ToInput converts the request to the service input.
func (r CreateReportRequest) ToInput() (report.CreateInput, error) {
	var in report.CreateInput

	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return in, apperror.NewValidation("invalid date, expected YYYY-MM-DD").
			WithDetail("value", r.Date)
	}

	locationID, err := id.Parse(r.LocationID)
	if err != nil {
		return in, apperror.NewValidation("invalid locationId").
			WithDetail("value", r.LocationID)
	}

	in = report.CreateInput{
		Date:       date,
		LocationID: locationID,
		TotalSales: r.TotalSales,
		Notes:      r.Notes,
		CashActual: r.CashActual,
	}

	if r.CreatedBy != nil && *r.CreatedBy != "" {
		createdBy, err := id.Parse(*r.CreatedBy)
		if err != nil {
			return in, apperror.NewValidation("invalid createdBy").
				WithDetail("value", *r.CreatedBy)
		}
		in.CreatedBy = &createdBy
	}

	for _, p := range r.Payments {
		pi, err := p.ToInput()
		if err != nil {
			return in, err
		}
		in.Payments = append(in.Payments, pi)
	}
	for _, l := range r.Incomes {
		li, err := l.ToInput()
		if err != nil {
			return in, err
		}
		in.Incomes = append(in.Incomes, li)
	}
	for _, l := range r.Expenses {
		li, err := l.ToInput()
		if err != nil {
			return in, err
		}
		in.Expenses = append(in.Expenses, li)
	}

	return in, nil
}

func (p PaymentLineRequest) ToInput() (report.PaymentInput, error) {
	methodID, err := id.Parse(p.MethodID)
	if err != nil {
		return report.PaymentInput{}, apperror.NewValidation("invalid methodId").
			WithDetail("value", p.MethodID)
	}
	return report.PaymentInput{MethodID: methodID, Amount: p.Amount}, nil
}

func (l MoneyLineRequest) ToInput() (report.MoneyLineInput, error) {
	accountID, err := id.Parse(l.AccountID)
	if err != nil {
		return report.MoneyLineInput{}, apperror.NewValidation("invalid accountId").
			WithDetail("value", l.AccountID)
	}

	in := report.MoneyLineInput{
		AccountID:   accountID,
		Amount:      l.Amount,
		Description: l.Description,
	}
	if l.CategoryID != nil && *l.CategoryID != "" {
		categoryID, err := id.Parse(*l.CategoryID)
		if err != nil {
			return in, apperror.NewValidation("invalid categoryId").
				WithDetail("value", *l.CategoryID)
		}
		in.CategoryID = &categoryID
	}
	return in, nil
}

// CloseReportRequest carries the counted cash for the close transition.
type CloseReportRequest struct {
	CashActual types.Money `json:"cashActual"`
}

// UpdateCashRequest carries the cash reconciliation figures.
type UpdateCashRequest struct {
	CashExpected  types.Money          `json:"cashExpected"`
	CashActual    types.Money          `json:"cashActual"`
	CashBreakdown report.CashBreakdown `json:"cashBreakdown"`
}

// VerifyReportRequest names the verifying user.
type VerifyReportRequest struct {
	VerifiedBy string `json:"verifiedBy" binding:"required"`
}

// --- Responses ---

// ReportResponse is the report header.
type ReportResponse struct {
	ID             string               `json:"id"`
	Date           string               `json:"date"`
	LocationID     string               `json:"locationId"`
	LocationName   string               `json:"locationName,omitempty"`
	TotalSales     types.Money          `json:"totalSales"`
	CashExpected   *types.Money         `json:"cashExpected,omitempty"`
	CashActual     *types.Money         `json:"cashActual,omitempty"`
	CashDifference *types.Money         `json:"cashDifference,omitempty"`
	CashBreakdown  report.CashBreakdown `json:"cashBreakdown,omitempty"`
	Status         string               `json:"status"`
	CreatedBy      *string              `json:"createdBy,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	ClosedAt       *time.Time           `json:"closedAt,omitempty"`
	VerifiedBy     *string              `json:"verifiedBy,omitempty"`
	VerifiedAt     *time.Time           `json:"verifiedAt,omitempty"`
	Notes          *string              `json:"notes,omitempty"`
}

// FromReport creates ReportResponse from the model.
func FromReport(r *report.Report) ReportResponse {
	resp := ReportResponse{
		ID:             r.ID.String(),
		Date:           r.ReportDate.Format(dateLayout),
		LocationID:     r.LocationID.String(),
		LocationName:   r.LocationName,
		TotalSales:     r.TotalSales,
		CashExpected:   r.CashExpected,
		CashActual:     r.CashActual,
		CashDifference: r.CashDifference,
		CashBreakdown:  r.CashBreakdown,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
		ClosedAt:       r.ClosedAt,
		VerifiedAt:     r.VerifiedAt,
		Notes:          r.Notes,
	}
	if r.CreatedBy != nil {
		s := r.CreatedBy.String()
		resp.CreatedBy = &s
	}
	if r.VerifiedBy != nil {
		s := r.VerifiedBy.String()
		resp.VerifiedBy = &s
	}
	return resp
}

// FromReports converts a listing.
func FromReports(items []*report.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(items))
	for _, r := range items {
		out = append(out, FromReport(r))
	}
	return out
}

// PaymentLineResponse is one payment line with its commission snapshot.
type PaymentLineResponse struct {
	ID               string      `json:"id"`
	MethodID         string      `json:"methodId"`
	MethodName       string      `json:"methodName,omitempty"`
	AccountID        string      `json:"accountId"`
	Amount           types.Money `json:"amount"`
	CommissionAmount types.Money `json:"commissionAmount"`
	NetAmount        types.Money `json:"netAmount"`
}

// MoneyLineResponse is one income or expense line.
type MoneyLineResponse struct {
	ID           string      `json:"id"`
	CategoryID   *string     `json:"categoryId,omitempty"`
	CategoryName *string     `json:"categoryName,omitempty"`
	AccountID    string      `json:"accountId"`
	Amount       types.Money `json:"amount"`
	Description  *string     `json:"description,omitempty"`
}

// ReportDetailsResponse is the header plus all line collections.
type ReportDetailsResponse struct {
	ReportResponse
	Payments []PaymentLineResponse `json:"payments"`
	Incomes  []MoneyLineResponse   `json:"incomes"`
	Expenses []MoneyLineResponse   `json:"expenses"`
}

// FromReportDetails creates the full report view.
func FromReportDetails(d *report.Details) ReportDetailsResponse {
	resp := ReportDetailsResponse{
		ReportResponse: FromReport(&d.Report),
		Payments:       make([]PaymentLineResponse, 0, len(d.Payments)),
		Incomes:        make([]MoneyLineResponse, 0, len(d.Incomes)),
		Expenses:       make([]MoneyLineResponse, 0, len(d.Expenses)),
	}
	for _, p := range d.Payments {
		resp.Payments = append(resp.Payments, PaymentLineResponse{
			ID:               p.ID.String(),
			MethodID:         p.PaymentMethodID.String(),
			MethodName:       p.MethodName,
			AccountID:        p.AccountID.String(),
			Amount:           p.Amount,
			CommissionAmount: p.CommissionAmount,
			NetAmount:        p.NetAmount,
		})
	}
	resp.Incomes = appendMoneyLines(resp.Incomes, d.Incomes)
	resp.Expenses = appendMoneyLines(resp.Expenses, d.Expenses)
	return resp
}

func appendMoneyLines(dst []MoneyLineResponse, lines []*report.MoneyLine) []MoneyLineResponse {
	for _, l := range lines {
		r := MoneyLineResponse{
			ID:           l.ID.String(),
			CategoryName: l.CategoryName,
			AccountID:    l.AccountID.String(),
			Amount:       l.Amount,
			Description:  l.Description,
		}
		if l.CategoryID != nil {
			s := l.CategoryID.String()
			r.CategoryID = &s
		}
		dst = append(dst, r)
	}
	return dst
}
