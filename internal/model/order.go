package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// 订单只会经历 pending -> paid。status 列本身是自由文本，
// 重复的成功回调把 paid 再写成 paid，没有额外副作用。
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// TxnIDPrefix 网关侧交易号前缀，交易号 = 前缀 + 订单ID
const TxnIDPrefix = "ORD_"

// TxnIDForOrder 由订单ID确定性地派生交易号
func TxnIDForOrder(orderID int64) string {
	return TxnIDPrefix + strconv.FormatInt(orderID, 10)
}

type Order struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        string          `gorm:"type:varchar(64);index;not null" json:"user_id"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentMethod string          `gorm:"type:varchar(64)" json:"payment_method"`
	Status        string          `gorm:"type:varchar(20);index;not null" json:"status"`
	PaymentTxnID  *string         `gorm:"type:varchar(64);index" json:"payment_txn_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
