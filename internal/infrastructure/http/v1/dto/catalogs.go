package dto

import (
	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/core/types"
	"kassa/internal/domain/catalogs/account"
	"kassa/internal/domain/catalogs/category"
	"kassa/internal/domain/catalogs/expensecat"
	"kassa/internal/domain/catalogs/location"
	"kassa/internal/domain/catalogs/paymethod"
	"kassa/internal/domain/catalogs/user"
)

// --- Accounts ---

type CreateAccountRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Currency    string  `json:"currency"`
	Description *string `json:"description"`
}

func (r CreateAccountRequest) ToModel() *account.Account {
	acc := account.NewAccount(r.Name, account.Type(r.Type))
	if r.Currency != "" {
		acc.Currency = r.Currency
	}
	acc.Description = r.Description
	return acc
}

type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Currency    *string `json:"currency"`
	Description *string `json:"description"`
}

// Apply merges non-nil fields into the model.
func (r UpdateAccountRequest) Apply(acc *account.Account) {
	if r.Name != nil {
		acc.Name = *r.Name
	}
	if r.Currency != nil {
		acc.Currency = *r.Currency
	}
	if r.Description != nil {
		acc.Description = r.Description
	}
}

type AccountResponse struct {
	CatalogResponse
	Type        string  `json:"type"`
	Currency    string  `json:"currency"`
	Description *string `json:"description,omitempty"`
}

func FromAccount(a *account.Account) AccountResponse {
	return AccountResponse{
		CatalogResponse: FromCatalog(a.Catalog),
		Type:            string(a.Type),
		Currency:        a.Currency,
		Description:     a.Description,
	}
}

func FromAccounts(items []*account.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(items))
	for _, a := range items {
		out = append(out, FromAccount(a))
	}
	return out
}

// --- Payment methods ---

type CreatePaymentMethodRequest struct {
	Name              string      `json:"name" binding:"required"`
	Type              string      `json:"type" binding:"required"`
	CommissionPercent types.Money `json:"commissionPercent"`
	DefaultAccountID  string      `json:"defaultAccountId" binding:"required"`
	Description       *string     `json:"description"`
	IsVisible         *bool       `json:"isVisible"`
	DisplayOrder      int         `json:"displayOrder"`
}

func (r CreatePaymentMethodRequest) ToModel() (*paymethod.PaymentMethod, error) {
	accountID, err := id.Parse(r.DefaultAccountID)
	if err != nil {
		return nil, apperror.NewValidation("invalid defaultAccountId").
			WithDetail("value", r.DefaultAccountID)
	}

	m := paymethod.NewPaymentMethod(r.Name, paymethod.MethodType(r.Type), accountID, r.CommissionPercent)
	m.Description = r.Description
	m.DisplayOrder = r.DisplayOrder
	if r.IsVisible != nil {
		m.IsVisible = *r.IsVisible
	}
	return m, nil
}

type UpdatePaymentMethodRequest struct {
	Name              *string      `json:"name"`
	Type              *string      `json:"type"`
	CommissionPercent *types.Money `json:"commissionPercent"`
	DefaultAccountID  *string      `json:"defaultAccountId"`
	Description       *string      `json:"description"`
	DisplayOrder      *int         `json:"displayOrder"`
}

func (r UpdatePaymentMethodRequest) Apply(m *paymethod.PaymentMethod) error {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Type != nil {
		m.Type = paymethod.MethodType(*r.Type)
	}
	if r.CommissionPercent != nil {
		m.CommissionPercent = *r.CommissionPercent
	}
	if r.DefaultAccountID != nil {
		accountID, err := id.Parse(*r.DefaultAccountID)
		if err != nil {
			return apperror.NewValidation("invalid defaultAccountId").
				WithDetail("value", *r.DefaultAccountID)
		}
		m.DefaultAccountID = accountID
	}
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.DisplayOrder != nil {
		m.DisplayOrder = *r.DisplayOrder
	}
	return nil
}

type SetVisibilityRequest struct {
	Visible bool `json:"visible"`
}

type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIds" binding:"required"`
}

func (r ReorderRequest) ParseIDs() ([]id.ID, error) {
	ids := make([]id.ID, 0, len(r.OrderedIDs))
	for _, s := range r.OrderedIDs {
		parsed, err := id.Parse(s)
		if err != nil {
			return nil, apperror.NewValidation("invalid id in orderedIds").
				WithDetail("value", s)
		}
		ids = append(ids, parsed)
	}
	return ids, nil
}

type PaymentMethodResponse struct {
	CatalogResponse
	Type              string      `json:"type"`
	CommissionPercent types.Money `json:"commissionPercent"`
	DefaultAccountID  string      `json:"defaultAccountId"`
	Description       *string     `json:"description,omitempty"`
	IsVisible         bool        `json:"isVisible"`
	DisplayOrder      int         `json:"displayOrder"`
}

func FromPaymentMethod(m *paymethod.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		CatalogResponse:   FromCatalog(m.Catalog),
		Type:              string(m.Type),
		CommissionPercent: m.CommissionPercent,
		DefaultAccountID:  m.DefaultAccountID.String(),
		Description:       m.Description,
		IsVisible:         m.IsVisible,
		DisplayOrder:      m.DisplayOrder,
	}
}

func FromPaymentMethods(items []*paymethod.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, 0, len(items))
	for _, m := range items {
		out = append(out, FromPaymentMethod(m))
	}
	return out
}

// --- Locations ---

type CreateLocationRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
}

func (r CreateLocationRequest) ToModel() *location.Location {
	loc := location.NewLocation(r.Name)
	loc.Address = r.Address
	return loc
}

type UpdateLocationRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

func (r UpdateLocationRequest) Apply(loc *location.Location) {
	if r.Name != nil {
		loc.Name = *r.Name
	}
	if r.Address != nil {
		loc.Address = r.Address
	}
}

type LocationResponse struct {
	CatalogResponse
	Address *string `json:"address,omitempty"`
}

func FromLocation(l *location.Location) LocationResponse {
	return LocationResponse{
		CatalogResponse: FromCatalog(l.Catalog),
		Address:         l.Address,
	}
}

func FromLocations(items []*location.Location) []LocationResponse {
	out := make([]LocationResponse, 0, len(items))
	for _, l := range items {
		out = append(out, FromLocation(l))
	}
	return out
}

// --- Categories ---

type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required"`
	Type     string  `json:"type" binding:"required"`
	ParentID *string `json:"parentId"`
}

func (r CreateCategoryRequest) ToModel() (*category.Category, error) {
	c := category.NewCategory(r.Name, category.Type(r.Type))
	if r.ParentID != nil && *r.ParentID != "" {
		parentID, err := id.Parse(*r.ParentID)
		if err != nil {
			return nil, apperror.NewValidation("invalid parentId").
				WithDetail("value", *r.ParentID)
		}
		c.ParentID = &parentID
	}
	return c, nil
}

type UpdateCategoryRequest struct {
	Name *string `json:"name"`
}

func (r UpdateCategoryRequest) Apply(c *category.Category) {
	if r.Name != nil {
		c.Name = *r.Name
	}
}

type CategoryResponse struct {
	CatalogResponse
	Type     string  `json:"type"`
	ParentID *string `json:"parentId,omitempty"`
}

func FromCategory(c *category.Category) CategoryResponse {
	resp := CategoryResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		Type:            string(c.Type),
	}
	if c.ParentID != nil {
		s := c.ParentID.String()
		resp.ParentID = &s
	}
	return resp
}

func FromCategories(items []*category.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, FromCategory(c))
	}
	return out
}

// --- Expense categories ---

type CreateExpenseCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

func (r CreateExpenseCategoryRequest) ToModel() *expensecat.ExpenseCategory {
	ec := expensecat.NewExpenseCategory(r.Name)
	ec.Description = r.Description
	return ec
}

type UpdateExpenseCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r UpdateExpenseCategoryRequest) Apply(ec *expensecat.ExpenseCategory) {
	if r.Name != nil {
		ec.Name = *r.Name
	}
	if r.Description != nil {
		ec.Description = r.Description
	}
}

type ExpenseCategoryResponse struct {
	CatalogResponse
	Description *string `json:"description,omitempty"`
}

func FromExpenseCategory(ec *expensecat.ExpenseCategory) ExpenseCategoryResponse {
	return ExpenseCategoryResponse{
		CatalogResponse: FromCatalog(ec.Catalog),
		Description:     ec.Description,
	}
}

func FromExpenseCategories(items []*expensecat.ExpenseCategory) []ExpenseCategoryResponse {
	out := make([]ExpenseCategoryResponse, 0, len(items))
	for _, ec := range items {
		out = append(out, FromExpenseCategory(ec))
	}
	return out
}

// --- Users ---

type CreateUserRequest struct {
	Name       string  `json:"name" binding:"required"`
	TelegramID int64   `json:"telegramId" binding:"required"`
	Username   *string `json:"username"`
	Role       string  `json:"role" binding:"required"`
}

func (r CreateUserRequest) ToModel() *user.User {
	u := user.NewUser(r.Name, r.TelegramID, user.Role(r.Role))
	u.Username = r.Username
	return u
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Role     *string `json:"role"`
}

func (r UpdateUserRequest) Apply(u *user.User) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.Username != nil {
		u.Username = r.Username
	}
	if r.Role != nil {
		u.Role = user.Role(*r.Role)
	}
}

type UserResponse struct {
	CatalogResponse
	TelegramID int64   `json:"telegramId"`
	Username   *string `json:"username,omitempty"`
	Role       string  `json:"role"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		CatalogResponse: FromCatalog(u.Catalog),
		TelegramID:      u.TelegramID,
		Username:        u.Username,
		Role:            string(u.Role),
	}
}

func FromUsers(items []*user.User) []UserResponse {
	out := make([]UserResponse, 0, len(items))
	for _, u := range items {
		out = append(out, FromUser(u))
	}
	return out
}
