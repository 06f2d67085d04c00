package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/parish_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
	"github.com/SscSPs/parish_ledger_app/internal/middleware"
)

// paymentHandler handles HTTP requests related to payment entries.
type paymentHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ledgerService portssvc.LedgerSvcFacade) *paymentHandler {
	return &paymentHandler{
		ledgerService: ledgerService,
	}
}

// registerPaymentRoutes wires the payment endpoints into the v1 group.
func registerPaymentRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newPaymentHandler(ledgerService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.GET("", h.listPayments)
		payments.POST("/sweep-overdue", h.sweepOverdue)
		payments.GET("/:paymentID", h.getPayment)
		payments.POST("/:paymentID/corrections", h.correctPayment)
		payments.PATCH("/:paymentID/status", h.setPaymentStatus)
	}
}

func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.RecordPaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c, logger)
	if !ok {
		return
	}

	entry, err := h.ledgerService.RecordPayment(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("payment_id", entry.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(entry))
}

func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	entry, err := h.ledgerService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(entry))
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListPaymentsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.ledgerService.ListPayments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *paymentHandler) correctPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	originalID := c.Param("paymentID")

	req := dto.CorrectPaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for correctPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c, logger)
	if !ok {
		return
	}

	correction, err := h.ledgerService.CorrectPayment(c.Request.Context(), originalID, req.Reason, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to correct payment")
		return
	}

	logger.Info("Payment corrected",
		slog.String("payment_id", originalID),
		slog.String("correction_id", correction.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(correction))
}

func (h *paymentHandler) setPaymentStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	req := dto.SetPaymentStatusRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for setPaymentStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := requireActorID(c, logger)
	if !ok {
		return
	}

	entry, err := h.ledgerService.SetPaymentStatus(c.Request.Context(), paymentID, domain.PaymentStatus(req.Status), actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update payment status")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(entry))
}

func (h *paymentHandler) sweepOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.SweepOverdueRequest{}
	// The body is optional; an empty body means sweep as of now.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind JSON for sweepOverdue", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	today := time.Now().UTC()
	if req.Today != nil {
		today = *req.Today
	}

	count, err := h.ledgerService.SweepOverdue(c.Request.Context(), today)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to sweep overdue payments")
		return
	}

	logger.Info("Overdue sweep completed", slog.Int("promoted", count))
	c.JSON(http.StatusOK, gin.H{"promoted": count})
}
