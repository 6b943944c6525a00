package handler

import (
	"errors"
	"log"
	"strconv"

	"payrelay/internal/repository"
	"payrelay/internal/service"
	"payrelay/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler 统一处理器，包含所有服务依赖
type Handler struct {
	orderService   *service.OrderService
	paymentService *service.PaymentService
}

// NewHandler 创建处理器实例
func NewHandler(orderService *service.OrderService, paymentService *service.PaymentService) *Handler {
	return &Handler{
		orderService:   orderService,
		paymentService: paymentService,
	}
}

// Health 健康检查
// GET /
func (h *Handler) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "Backend running"})
}

// ============================================================
// 订单相关接口
// ============================================================

// CreateOrder 创建订单
// POST /api/orders/create
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c)
		return
	}
	// userId 按 JavaScript 真值判断：0、false、""、null 视为缺失
	if !req.UserID.Truthy() {
		response.ParamError(c)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderRequest{
		UserID:        req.UserID.String(),
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrder) {
			response.ParamError(c)
			return
		}
		log.Printf("[CreateOrder] %v", err)
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"orderId": order.ID})
}

// GetOrder 查询订单详情
// GET /api/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			response.NotFound(c)
			return
		}
		log.Printf("[GetOrder] orderID=%d, err=%v", orderID, err)
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"order": order})
}

// ============================================================
// 支付相关接口
// ============================================================

// InitPayment 发起支付，返回网关跳转链接
// POST /api/payment/init
//
// 该接口对外只有 500 一种失败，请求体无法解析、orderId 非整数、amount 缺失都按 500 返回。
func (h *Handler) InitPayment(c *gin.Context) {
	var req InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[PaymentInit] 解析请求失败: %v", err)
		response.ServerError(c)
		return
	}
	orderID, err := req.orderID()
	if err != nil {
		log.Printf("[PaymentInit] orderId 非法: %q", req.OrderID.String())
		response.ServerError(c)
		return
	}
	if !req.Amount.Truthy() {
		log.Printf("[PaymentInit] amount 缺失: orderID=%d", orderID)
		response.ServerError(c)
		return
	}

	result, err := h.paymentService.InitPayment(c.Request.Context(), &service.InitPaymentRequest{
		OrderID:     orderID,
		Amount:      req.Amount.String(),
		PayerName:   req.PayerName,
		PayerEmail:  req.PayerEmail,
		PayerMobile: req.PayerMobile.String(),
	})
	if err != nil {
		log.Printf("[PaymentInit] 发起支付失败: %v", err)
		response.ServerError(c)
		return
	}

	// paymentUrl 含交易账号密码，只记录交易号
	log.Printf("[PaymentInit] 支付链接已生成: clientTxnId=%s", result.ClientTxnID)
	response.Success(c, gin.H{"paymentUrl": result.PaymentURL})
}

// PaymentCallback 网关异步通知
// POST /api/payment/callback
//
// 无论是否匹配到订单、是否处理成功，都回复纯文本 OK。
func (h *Handler) PaymentCallback(c *gin.Context) {
	var req CallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Printf("[PaymentCallback] 解析回调失败: %v", err)
		response.Ack(c)
		return
	}

	err := h.paymentService.HandleCallback(c.Request.Context(), &service.CallbackRequest{
		ClientTxnID: req.ClientTxnID,
		Status:      req.Status,
	})
	if err != nil {
		log.Printf("[PaymentCallback] %v", err)
	}

	response.Ack(c)
}
