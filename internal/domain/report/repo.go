package report

import (
	"context"
	"time"

	"kassa/internal/core/id"
	"kassa/internal/core/types"
)

// ListFilter narrows report listings.
type ListFilter struct {
	LocationID *id.ID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
}

// Repository defines the interface for report persistence.
type Repository interface {
	// Create inserts the report header.
	Create(ctx context.Context, r *Report) error

	// GetByID retrieves a header with the location name joined in.
	GetByID(ctx context.Context, id id.ID) (*Report, error)

	// GetByDateLocation retrieves the header for one (date, location) pair.
	GetByDateLocation(ctx context.Context, date time.Time, locationID id.ID) (*Report, error)

	// List returns headers sorted by report date descending.
	List(ctx context.Context, filter ListFilter) ([]*Report, error)

	// InsertPayment appends a payment line.
	InsertPayment(ctx context.Context, line *PaymentLine) error

	// InsertIncome appends a non-sales income line.
	InsertIncome(ctx context.Context, line *MoneyLine) error

	// InsertExpense appends an expense line.
	InsertExpense(ctx context.Context, line *MoneyLine) error

	// Payments returns the payment lines with method names joined in.
	Payments(ctx context.Context, reportID id.ID) ([]*PaymentLine, error)

	// Incomes returns the non-sales income lines with category names.
	Incomes(ctx context.Context, reportID id.ID) ([]*MoneyLine, error)

	// Expenses returns the expense lines with category names.
	Expenses(ctx context.Context, reportID id.ID) ([]*MoneyLine, error)

	// UpdateCash stores the counted cash figures and breakdown.
	UpdateCash(ctx context.Context, id id.ID, expected, actual, difference types.Money, breakdown CashBreakdown) error

	// SetClosed transitions the report to closed, recording the counted
	// cash when provided.
	SetClosed(ctx context.Context, id id.ID, cashActual *types.Money, closedAt time.Time) error

	// SetVerified transitions a closed report to verified.
	SetVerified(ctx context.Context, id id.ID, verifiedBy id.ID, verifiedAt time.Time) error
}
