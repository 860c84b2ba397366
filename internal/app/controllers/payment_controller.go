package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// PaymentController handles payment endpoints
type PaymentController struct {
	paymentService services.PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// CreatePayment records a purchase of a course
// @Summary Create payment
// @Description A zero price records the current course price
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePaymentRequest true "Payment data"
// @Success 201 {object} dto.SuccessResponse{payment=dto.PaymentResponse} "successfully created payment"
// @Failure 400 {object} dto.ErrorResponse "Invalid payment data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "no user found! or no course found!"
// @Router /payments/create [post]
func (c *PaymentController) CreatePayment(ctx *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	payment, err := c.paymentService.CreatePayment(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewEnvelope("successfully created payment", "payment", payment))
}

// ListPayments returns every payment
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse{payments=[]dto.PaymentResponse} "successfully fetched!"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /payments/list [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	payments, err := c.paymentService.ListPayments(ctx.Request.Context(), middleware.CurrentPrincipal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("successfully fetched!", "payments", payments))
}

// GetPayment returns one payment to its payer or an admin
// @Summary Get payment by ID
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param paymentId path string true "Payment ID" Format(uuid)
// @Success 200 {object} dto.SuccessResponse{payment=dto.PaymentResponse} "success"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "no payment found!"
// @Router /payments/{paymentId} [get]
func (c *PaymentController) GetPayment(ctx *gin.Context) {
	payment, err := c.paymentService.GetPayment(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), ctx.Param("paymentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("success", "payment", payment))
}

// DeletePayment removes a payment
// @Summary Delete payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param paymentId path string true "Payment ID" Format(uuid)
// @Success 200 {object} dto.SuccessResponse "successfully deleted payment!"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "no payment found!"
// @Router /payments/delete/{paymentId} [delete]
func (c *PaymentController) DeletePayment(ctx *gin.Context) {
	if err := c.paymentService.DeletePayment(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), ctx.Param("paymentId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("successfully deleted payment!", "", nil))
}
