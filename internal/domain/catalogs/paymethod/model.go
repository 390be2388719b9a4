// Package paymethod provides the PaymentMethod catalog.
// A payment method describes one way customers pay (card terminal,
// online wallet, delivery service) together with the commission the
// provider withholds and the account the net amount lands on.
package paymethod

import (
	"context"

	"kassa/internal/core/apperror"
	"kassa/internal/core/entity"
	"kassa/internal/core/id"
	"kassa/internal/core/types"
)

// MethodType groups payment methods for the cashier UI.
type MethodType string

const (
	TypeTerminal MethodType = "terminal"
	TypeOnline   MethodType = "online"
	TypeDelivery MethodType = "delivery"
)

// PaymentMethod represents one non-cash payment channel.
type PaymentMethod struct {
	entity.Catalog

	// Type groups the method in listings
	Type MethodType `db:"method_type" json:"type"`

	// CommissionPercent is the provider fee, 0..100
	CommissionPercent types.Money `db:"commission_percent" json:"commissionPercent"`

	// DefaultAccountID is where net amounts are credited
	DefaultAccountID id.ID `db:"default_account_id" json:"defaultAccountId"`

	// Description
	Description *string `db:"description" json:"description,omitempty"`

	// IsVisible controls whether cashiers see the method when filling a report
	IsVisible bool `db:"is_visible" json:"isVisible"`

	// DisplayOrder is the manual sort position in the cashier UI
	DisplayOrder int `db:"display_order" json:"displayOrder"`
}

// NewPaymentMethod creates a new PaymentMethod with required fields.
func NewPaymentMethod(name string, mType MethodType, accountID id.ID, commission types.Money) *PaymentMethod {
	return &PaymentMethod{
		Catalog:           entity.NewCatalog(name),
		Type:              mType,
		CommissionPercent: commission,
		DefaultAccountID:  accountID,
		IsVisible:         true,
	}
}

// Validate implements entity.Validatable.
func (m *PaymentMethod) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidMethodType(m.Type) {
		return apperror.NewValidation("invalid payment method type").
			WithDetail("field", "type").
			WithDetail("value", string(m.Type))
	}

	if !types.ValidPercent(m.CommissionPercent) {
		return apperror.NewValidation("commission percent must be between 0 and 100").
			WithDetail("field", "commissionPercent").
			WithDetail("value", m.CommissionPercent.String())
	}

	if id.IsNil(m.DefaultAccountID) {
		return apperror.NewValidation("default account is required").
			WithDetail("field", "defaultAccountId")
	}

	return nil
}

// Split applies the method's commission to a gross amount.
func (m *PaymentMethod) Split(amount types.Money) (commission, net types.Money) {
	return types.SplitCommission(amount, m.CommissionPercent)
}

func isValidMethodType(t MethodType) bool {
	switch t {
	case TypeTerminal, TypeOnline, TypeDelivery:
		return true
	}
	return false
}
