package repository

import (
	"context"
	"sync"
	"time"

	"payrelay/internal/model"
)

// MemoryOrderRepository 进程内订单存储，用于本地联调和测试，进程退出即丢失
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	nextID int64
	orders map[int64]*model.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[int64]*model.Order)}
}

func (r *MemoryOrderRepository) InsertOrder(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now()
	order.ID = r.nextID
	order.CreatedAt = now
	order.UpdatedAt = now

	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *MemoryOrderRepository) GetOrder(_ context.Context, id int64) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *order
	if order.PaymentTxnID != nil {
		txnID := *order.PaymentTxnID
		copied.PaymentTxnID = &txnID
	}
	return &copied, nil
}

func (r *MemoryOrderRepository) UpdateOrderTxnID(_ context.Context, orderID int64, txnID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order, ok := r.orders[orderID]; ok {
		order.PaymentTxnID = &txnID
		order.UpdatedAt = time.Now()
	}
	return nil
}

func (r *MemoryOrderRepository) UpdateOrderStatusByTxnID(_ context.Context, txnID string, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows int64
	for _, order := range r.orders {
		if order.PaymentTxnID == nil || *order.PaymentTxnID != txnID {
			continue
		}
		order.Status = status
		order.UpdatedAt = time.Now()
		rows++
	}
	return rows, nil
}
