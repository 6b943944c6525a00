package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"payrelay/internal/gateway"
	"payrelay/internal/model"
	"payrelay/internal/repository"
)

// CallbackStatusSuccess 网关回调中表示支付成功的状态值，大小写敏感
const CallbackStatusSuccess = "SUCCESS"

var ErrMissingAmount = errors.New("amount 不能为空")

// URLBuilder 生成网关跳转链接
type URLBuilder interface {
	PaymentURL(req gateway.InitRequest) string
}

// Locker 串行化同一订单的并发初始化请求
type Locker interface {
	Acquire(ctx context.Context, orderID int64) (release func(), err error)
}

type PaymentService struct {
	orderRepo repository.OrderRepository
	gateway   URLBuilder
	locker    Locker
}

// NewPaymentService locker 可以为 nil，此时不加锁
func NewPaymentService(orderRepo repository.OrderRepository, gw URLBuilder, locker Locker) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		gateway:   gw,
		locker:    locker,
	}
}

// InitPaymentRequest Amount 是调用方提交的金额原文，签名与链接都直接使用，不做格式化
type InitPaymentRequest struct {
	OrderID     int64
	Amount      string
	PayerName   string
	PayerEmail  string
	PayerMobile string
}

type InitPaymentResult struct {
	ClientTxnID string
	PaymentURL  string
}

// InitPayment 派生交易号、生成带签名的跳转链接，并把交易号写回订单。
// 写回不检查订单是否存在或是否仍为 pending，重复调用得到同一交易号。
func (s *PaymentService) InitPayment(ctx context.Context, req *InitPaymentRequest) (*InitPaymentResult, error) {
	if req.Amount == "" {
		return nil, ErrMissingAmount
	}

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, req.OrderID)
		if err != nil {
			return nil, fmt.Errorf("获取订单锁失败: orderID=%d: %w", req.OrderID, err)
		}
		defer release()
	}

	clientTxnID := model.TxnIDForOrder(req.OrderID)

	paymentURL := s.gateway.PaymentURL(gateway.InitRequest{
		ClientTxnID: clientTxnID,
		Amount:      req.Amount,
		PayerName:   req.PayerName,
		PayerEmail:  req.PayerEmail,
		PayerMobile: req.PayerMobile,
	})

	if err := s.orderRepo.UpdateOrderTxnID(ctx, req.OrderID, clientTxnID); err != nil {
		return nil, fmt.Errorf("写入交易号失败: orderID=%d: %w", req.OrderID, err)
	}

	return &InitPaymentResult{
		ClientTxnID: clientTxnID,
		PaymentURL:  paymentURL,
	}, nil
}

type CallbackRequest struct {
	ClientTxnID string
	Status      string
}

// HandleCallback 处理网关异步通知。只有 SUCCESS 会把订单置为 paid，
// 其它状态以及未匹配的交易号都是正常的空操作。
// 回调未做签名校验，任何能访问该接口的人都可以标记订单已支付。
func (s *PaymentService) HandleCallback(ctx context.Context, req *CallbackRequest) error {
	if req.Status != CallbackStatusSuccess {
		log.Printf("[PaymentCallback] 忽略非成功回调: clientTxnId=%s, status=%s", req.ClientTxnID, req.Status)
		return nil
	}

	rows, err := s.orderRepo.UpdateOrderStatusByTxnID(ctx, req.ClientTxnID, model.OrderStatusPaid)
	if err != nil {
		return fmt.Errorf("更新订单状态失败: clientTxnId=%s: %w", req.ClientTxnID, err)
	}

	if rows == 0 {
		log.Printf("[PaymentCallback] 未找到匹配订单: clientTxnId=%s", req.ClientTxnID)
		return nil
	}

	log.Printf("[PaymentCallback] 订单已支付: clientTxnId=%s, rows=%d", req.ClientTxnID, rows)
	return nil
}
