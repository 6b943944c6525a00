package service

import (
	"context"
	"errors"
	"fmt"

	"payrelay/internal/model"
	"payrelay/internal/repository"

	"github.com/shopspring/decimal"
)

var ErrInvalidOrder = errors.New("userId 与 totalAmount 为必填项")

type OrderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

type CreateOrderRequest struct {
	UserID        string
	TotalAmount   decimal.Decimal
	PaymentMethod string
}

// CreateOrder 校验必填字段并写入一条 pending 订单，ID 由数据库生成。
// userId 只要求非空，空白字符串也原样保存。
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*model.Order, error) {
	if req.UserID == "" || !req.TotalAmount.IsPositive() {
		return nil, ErrInvalidOrder
	}

	order := &model.Order{
		UserID:        req.UserID,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		Status:        model.OrderStatusPending,
	}

	if err := s.orderRepo.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.orderRepo.GetOrder(ctx, orderID)
}
