package repository

import (
	"context"
	"errors"

	"payrelay/internal/model"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("订单不存在")
)

// OrderRepository 订单存储，处理器只依赖这四个操作
type OrderRepository interface {
	InsertOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	// UpdateOrderTxnID 无条件写入交易号，匹配 0 行不视为错误
	UpdateOrderTxnID(ctx context.Context, orderID int64, txnID string) error
	// UpdateOrderStatusByTxnID 按交易号等值匹配更新状态，不看当前状态，返回受影响行数
	UpdateOrderStatusByTxnID(ctx context.Context, txnID string, status string) (int64, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) InsertOrder(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) UpdateOrderTxnID(ctx context.Context, orderID int64, txnID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("payment_txn_id", txnID).Error
}

func (r *GormOrderRepository) UpdateOrderStatusByTxnID(ctx context.Context, txnID string, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("payment_txn_id = ?", txnID).
		Update("status", status)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
