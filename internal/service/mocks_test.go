package service

import (
	"context"

	"payrelay/internal/gateway"
	"payrelay/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) InsertOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderTxnID(ctx context.Context, orderID int64, txnID string) error {
	args := m.Called(ctx, orderID, txnID)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderStatusByTxnID(ctx context.Context, txnID string, status string) (int64, error) {
	args := m.Called(ctx, txnID, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockURLBuilder struct {
	mock.Mock
}

func (m *MockURLBuilder) PaymentURL(req gateway.InitRequest) string {
	return m.Called(req).String(0)
}

type MockLocker struct {
	mock.Mock
	released int
}

func (m *MockLocker) Acquire(ctx context.Context, orderID int64) (func(), error) {
	args := m.Called(ctx, orderID)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.released++ }, nil
}
