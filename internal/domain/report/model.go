// Package report provides the daily cashier report: the central document
// of the system. One report per location per day collects sales split by
// payment method, non-sales income, expenses and the physical cash count.
package report

import (
	"context"
	"time"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/core/types"
)

// Status is the report lifecycle state.
type Status string

const (
	// StatusOpen allows appending lines and editing cash figures.
	StatusOpen Status = "open"

	// StatusClosed means the shift is finished; the report counts
	// toward balances and history.
	StatusClosed Status = "closed"

	// StatusVerified means an accountant confirmed the closed report.
	StatusVerified Status = "verified"
)

// CashBreakdown maps banknote denomination to count, e.g. {"100000": 12}.
type CashBreakdown map[string]int

// Report is the daily report header.
type Report struct {
	ID         id.ID     `db:"id" json:"id"`
	ReportDate time.Time `db:"report_date" json:"reportDate"`
	LocationID id.ID     `db:"location_id" json:"locationId"`

	// LocationName is joined in by the store, not a column of the report itself
	LocationName string `db:"location_name" json:"locationName,omitempty"`

	// TotalSales is the register total for the shift as entered by the cashier
	TotalSales types.Money `db:"total_sales" json:"totalSales"`

	// Cash figures stay nil until counted
	CashExpected   *types.Money  `db:"cash_expected" json:"cashExpected,omitempty"`
	CashActual     *types.Money  `db:"cash_actual" json:"cashActual,omitempty"`
	CashDifference *types.Money  `db:"cash_difference" json:"cashDifference,omitempty"`
	CashBreakdown  CashBreakdown `db:"cash_breakdown" json:"cashBreakdown,omitempty"`

	Status Status `db:"status" json:"status"`

	CreatedBy  *id.ID     `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	ClosedAt   *time.Time `db:"closed_at" json:"closedAt,omitempty"`
	VerifiedBy *id.ID     `db:"verified_by" json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time `db:"verified_at" json:"verifiedAt,omitempty"`

	Notes *string `db:"notes" json:"notes,omitempty"`
}

// PaymentLine is one non-cash sales line with its commission snapshot.
// CommissionAmount + NetAmount always equals Amount exactly.
type PaymentLine struct {
	ID              id.ID `db:"id" json:"id"`
	ReportID        id.ID `db:"report_id" json:"reportId"`
	PaymentMethodID id.ID `db:"payment_method_id" json:"paymentMethodId"`

	// MethodName is joined in by the store
	MethodName string `db:"method_name" json:"methodName,omitempty"`

	// AccountID is where the net amount is credited
	AccountID id.ID `db:"account_id" json:"accountId"`

	Amount           types.Money `db:"amount" json:"amount"`
	CommissionAmount types.Money `db:"commission_amount" json:"commissionAmount"`
	NetAmount        types.Money `db:"net_amount" json:"netAmount"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// MoneyLine is one non-sales income or expense line.
type MoneyLine struct {
	ID       id.ID `db:"id" json:"id"`
	ReportID id.ID `db:"report_id" json:"reportId"`

	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// CategoryName is joined in by the store
	CategoryName *string `db:"category_name" json:"categoryName,omitempty"`

	AccountID   id.ID       `db:"account_id" json:"accountId"`
	Amount      types.Money `db:"amount" json:"amount"`
	Description *string     `db:"description" json:"description,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Details is a report header with all of its line collections.
type Details struct {
	Report   `json:"report"`
	Payments []*PaymentLine `json:"payments"`
	Incomes  []*MoneyLine   `json:"incomes"`
	Expenses []*MoneyLine   `json:"expenses"`
}

// NewReport creates an open report header.
func NewReport(date time.Time, locationID id.ID, totalSales types.Money, createdBy *id.ID) *Report {
	return &Report{
		ID:         id.New(),
		ReportDate: truncateToDay(date),
		LocationID: locationID,
		TotalSales: totalSales,
		Status:     StatusOpen,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate checks header invariants.
func (r *Report) Validate(_ context.Context) error {
	if r.ReportDate.IsZero() {
		return apperror.NewValidation("report date is required").
			WithDetail("field", "reportDate")
	}
	if id.IsNil(r.LocationID) {
		return apperror.NewValidation("location is required").
			WithDetail("field", "locationId")
	}
	if r.TotalSales.IsNegative() {
		return apperror.NewValidation("total sales cannot be negative").
			WithDetail("field", "totalSales")
	}
	return nil
}

// IsOpen reports whether lines can still be appended.
func (r *Report) IsOpen() bool { return r.Status == StatusOpen }

// IsClosed reports whether the report counts toward balances.
func (r *Report) IsClosed() bool {
	return r.Status == StatusClosed || r.Status == StatusVerified
}

// EnsureOpen returns REPORT_CLOSED unless the report is open.
func (r *Report) EnsureOpen() error {
	if !r.IsOpen() {
		return apperror.NewReportClosed(r.ID.String(), string(r.Status))
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
