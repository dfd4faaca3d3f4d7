package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"bloomora/internal/domain"
	"bloomora/internal/infra"
	"bloomora/internal/services"

	"github.com/gin-gonic/gin"
)

const queryDateLayout = "2006-01-02"

type Handler struct {
	customers *services.CustomerService
	orders    *services.OrderService
	reports   *services.ReportService
}

func NewHandler(customers *services.CustomerService, orders *services.OrderService, reports *services.ReportService) *Handler {
	return &Handler{customers: customers, orders: orders, reports: reports}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(actorMiddleware())

	r.POST("/customers", h.CreateCustomer)
	r.GET("/customers", h.ListCustomers)
	r.PUT("/customers/:id", h.UpdateCustomer)
	r.DELETE("/customers/:id", h.DeleteCustomer)

	r.POST("/orders", h.CreateOrder)
	r.GET("/orders", h.ListOrders)
	r.PUT("/orders/:id", h.UpdateOrder)
	r.DELETE("/orders/:id", h.DeleteOrder)
	r.GET("/orders/:id/invoice", h.OrderInvoice)

	r.GET("/dashboard", h.GetDashboard)
	r.GET("/reports/summary", h.SummaryReport)
}

// actorMiddleware lifts the authenticated user's identifier off the request
// so audit fields can be stamped downstream. Absent header means "System".
func actorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader("X-Actor"); actor != "" {
			c.Request = c.Request.WithContext(infra.WithActor(c.Request.Context(), actor))
		}
		c.Next()
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrCustomerNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrNegativeTotal),
		errors.Is(err, services.ErrInvalidAdvance),
		errors.Is(err, services.ErrMissingProducts),
		errors.Is(err, services.ErrMissingName),
		errors.Is(err, services.ErrMissingPhone),
		errors.Is(err, services.ErrNoReportData):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := domain.Customer{
		FullName:    req.FullName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Preferences: req.Preferences,
	}
	if err := h.customers.Create(c.Request.Context(), &customer); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), c.Param("id"), domain.Customer{
		FullName:    req.FullName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Preferences: req.Preferences,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := domain.Order{
		CustomerID:          req.CustomerID,
		DeliveryDate:        req.DeliveryDate,
		Products:            req.Products,
		TotalValue:          req.TotalValue,
		Status:              domain.OrderStatus(req.Status),
		AdvanceAmount:       req.AdvanceAmount,
		SpecialInstructions: req.SpecialInstructions,
	}
	if err := h.orders.Create(c.Request.Context(), &order); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Update(c.Request.Context(), c.Param("id"), domain.Order{
		CustomerID:          req.CustomerID,
		DeliveryDate:        req.DeliveryDate,
		Products:            req.Products,
		TotalValue:          req.TotalValue,
		Status:              domain.OrderStatus(req.Status),
		AdvanceAmount:       req.AdvanceAmount,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dashboard, err := h.orders.GetDashboard(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *Handler) SummaryReport(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if from.IsZero() {
		// default range: first of the current month through today
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = now
	}

	if c.Query("format") == "pdf" {
		pdf, err := h.reports.SummaryPDF(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		filename := fmt.Sprintf("Bloomora_Report_%s_to_%s.pdf",
			from.Format(queryDateLayout), endOrFrom(from, to).Format(queryDateLayout))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", pdf)
		return
	}

	summary, err := h.reports.Summary(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) OrderInvoice(c *gin.Context) {
	pdf, err := h.reports.InvoicePDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "Bloomora_Invoice_"+c.Param("id")+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date %q", raw)
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date %q", raw)
		}
		to = parsed
	}
	return from, to, nil
}

func endOrFrom(from, to time.Time) time.Time {
	if to.IsZero() {
		return from
	}
	return to
}
