package controller

import (
	"lms_tracking_backend/internal/service"
	"lms_tracking_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{PaymentService: paymentService}
}

type ConfirmOrderRequest struct {
	StudentID string  `json:"student" binding:"required"`
	CourseID  string  `json:"course" binding:"required"`
	OrderRef  string  `json:"orderRef" binding:"required"`
	Amount    float64 `json:"amount" binding:"min=0"`
}

// @Summary 支付成功回调
// @Description 记录支付订单并触发课程报名
// @Tags 支付
// @Accept json
// @Produce json
// @Param order body ConfirmOrderRequest true "订单信息"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /payments/order [post]
func (c *PaymentController) ConfirmOrder(ctx *gin.Context) {
	var req ConfirmOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollmentID, err := c.PaymentService.ConfirmOrder(req.StudentID, req.CourseID, req.OrderRef, req.Amount)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"message":      "Order created successfully",
		"enrollmentId": enrollmentID,
	})
}
