package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/domain/report"
	"kassa/internal/infrastructure/http/v1/dto"
)

const dateLayout = "2006-01-02"

// ReportHandler serves daily cashier reports.
type ReportHandler struct {
	*BaseHandler
	service *report.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *report.Service) *ReportHandler {
	return &ReportHandler{BaseHandler: base, service: service}
}

// Create handles POST /reports
// Accepts the whole end-of-shift submission: header, payment lines,
// non-sales income and expenses, optionally closing in the same call.
func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	d, err := h.service.Details(c.Request.Context(), r.ID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromReportDetails(d))
}

// List handles GET /reports
func (h *ReportHandler) List(c *gin.Context) {
	filter, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromReports(items),
		TotalCount: int64(len(items)),
		Limit:      filter.Limit,
	})
}

func (h *ReportHandler) parseListFilter(c *gin.Context) (report.ListFilter, bool) {
	var filter report.ListFilter

	if raw := c.Query("locationId"); raw != "" {
		locationID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid locationId").WithDetail("value", raw))
			return filter, false
		}
		filter.LocationID = &locationID
	}
	if raw := c.Query("status"); raw != "" {
		status := report.Status(raw)
		filter.Status = &status
	}
	if raw := c.Query("dateFrom"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateFrom").WithDetail("value", raw))
			return filter, false
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("dateTo"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateTo").WithDetail("value", raw))
			return filter, false
		}
		filter.DateTo = &to
	}
	filter.Limit = h.ParseIntQuery(c, "limit", 0)

	return filter, true
}

// Get handles GET /reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	reportID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	d, err := h.service.Details(c.Request.Context(), reportID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReportDetails(d))
}

// GetByDate handles GET /reports/by-date?date=&locationId=
func (h *ReportHandler) GetByDate(c *gin.Context) {
	rawDate := c.Query("date")
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date").WithDetail("value", rawDate))
		return
	}

	rawLocation := c.Query("locationId")
	locationID, err := id.Parse(rawLocation)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid locationId").WithDetail("value", rawLocation))
		return
	}

	r, err := h.service.GetByDateLocation(c.Request.Context(), date, locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReport(r))
}

// Close handles POST /reports/:id/close
func (h *ReportHandler) Close(c *gin.Context) {
	reportID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CloseReportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r, err := h.service.Close(c.Request.Context(), reportID, req.CashActual)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReport(r))
}

// Verify handles POST /reports/:id/verify
func (h *ReportHandler) Verify(c *gin.Context) {
	reportID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.VerifyReportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	verifiedBy, err := id.Parse(req.VerifiedBy)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid verifiedBy").WithDetail("value", req.VerifiedBy))
		return
	}

	r, err := h.service.Verify(c.Request.Context(), reportID, verifiedBy)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReport(r))
}

// UpdateCash handles PUT /reports/:id/cash
func (h *ReportHandler) UpdateCash(c *gin.Context) {
	reportID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCashRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r, err := h.service.UpdateCash(c.Request.Context(), reportID, req.CashExpected, req.CashActual, req.CashBreakdown)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReport(r))
}

// AddPayment handles POST /reports/:id/payments
func (h *ReportHandler) AddPayment(c *gin.Context) {
	reportID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PaymentLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	line, err := h.service.AddPayment(c.Request.Context(), reportID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, line.ID)
}

// AddIncome handles POST /reports/:id/incomes
func (h *ReportHandler) AddIncome(c *gin.Context) {
	h.addMoneyLine(c, h.service.AddIncome)
}

// AddExpense handles POST /reports/:id/expenses
func (h *ReportHandler) AddExpense(c *gin.Context) {
	h.addMoneyLine(c, h.service.AddExpense)
}

func (h *ReportHandler) addMoneyLine(
	c *gin.Context,
	add func(ctx context.Context, reportID id.ID, in report.MoneyLineInput) (*report.MoneyLine, error),
) {
	reportID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.MoneyLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	line, err := add(c.Request.Context(), reportID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, line.ID)
}
