package repository

import (
	"context"
	"testing"

	"payrelay/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ OrderRepository = (*MemoryOrderRepository)(nil)
var _ OrderRepository = (*GormOrderRepository)(nil)

func newPendingOrder(userID string) *model.Order {
	return &model.Order{
		UserID:      userID,
		TotalAmount: decimal.NewFromInt(500),
		Status:      model.OrderStatusPending,
	}
}

// runOrderRepositoryContract 两种实现共用的行为用例
func runOrderRepositoryContract(t *testing.T, newRepo func(t *testing.T) OrderRepository) {
	t.Run("InsertAssignsIDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, b := newPendingOrder("u1"), newPendingOrder("u2")
		a.PaymentMethod = "upi"
		require.NoError(t, repo.InsertOrder(ctx, a))
		require.NoError(t, repo.InsertOrder(ctx, b))
		assert.NotZero(t, a.ID)
		assert.NotEqual(t, a.ID, b.ID)

		got, err := repo.GetOrder(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "u1", got.UserID)
		assert.Equal(t, "upi", got.PaymentMethod)
		assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(500)), got.TotalAmount.String())
		assert.Equal(t, model.OrderStatusPending, got.Status)
		assert.Nil(t, got.PaymentTxnID)
	})

	t.Run("GetOrderNotFound", func(t *testing.T) {
		_, err := newRepo(t).GetOrder(context.Background(), 404)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("UpdateTxnID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		assert.NoError(t, repo.UpdateOrderTxnID(ctx, 99, "ORD_99"), "unknown order is not an error")

		order := newPendingOrder("u1")
		require.NoError(t, repo.InsertOrder(ctx, order))
		txnID := model.TxnIDForOrder(order.ID)
		require.NoError(t, repo.UpdateOrderTxnID(ctx, order.ID, txnID))
		require.NoError(t, repo.UpdateOrderTxnID(ctx, order.ID, txnID))

		got, err := repo.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got.PaymentTxnID)
		assert.Equal(t, txnID, *got.PaymentTxnID)
		assert.Equal(t, model.OrderStatusPending, got.Status)
	})

	t.Run("StatusUpdateByTxnID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		order, other := newPendingOrder("u1"), newPendingOrder("u2")
		require.NoError(t, repo.InsertOrder(ctx, order))
		require.NoError(t, repo.InsertOrder(ctx, other))
		txnID := model.TxnIDForOrder(order.ID)
		require.NoError(t, repo.UpdateOrderTxnID(ctx, order.ID, txnID))

		rows, err := repo.UpdateOrderStatusByTxnID(ctx, "ORD_404", model.OrderStatusPaid)
		require.NoError(t, err)
		assert.Zero(t, rows)

		for i := 0; i < 2; i++ {
			rows, err = repo.UpdateOrderStatusByTxnID(ctx, txnID, model.OrderStatusPaid)
			require.NoError(t, err)
			assert.Equal(t, int64(1), rows)

			got, _ := repo.GetOrder(ctx, order.ID)
			assert.Equal(t, model.OrderStatusPaid, got.Status)
		}

		untouched, _ := repo.GetOrder(ctx, other.ID)
		assert.Equal(t, model.OrderStatusPending, untouched.Status)
	})

	t.Run("StatusUpdateIgnoresCurrentStatus", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		order := newPendingOrder("u1")
		order.Status = "cancelled"
		require.NoError(t, repo.InsertOrder(ctx, order))
		require.NoError(t, repo.UpdateOrderTxnID(ctx, order.ID, "ORD_X"))

		rows, err := repo.UpdateOrderStatusByTxnID(ctx, "ORD_X", model.OrderStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		got, _ := repo.GetOrder(ctx, order.ID)
		assert.Equal(t, model.OrderStatusPaid, got.Status)
	})

	t.Run("StatusUpdateAppliesToEveryMatch", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, b := newPendingOrder("u1"), newPendingOrder("u2")
		require.NoError(t, repo.InsertOrder(ctx, a))
		require.NoError(t, repo.InsertOrder(ctx, b))
		require.NoError(t, repo.UpdateOrderTxnID(ctx, a.ID, "ORD_DUP"))
		require.NoError(t, repo.UpdateOrderTxnID(ctx, b.ID, "ORD_DUP"))

		rows, err := repo.UpdateOrderStatusByTxnID(ctx, "ORD_DUP", model.OrderStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, int64(2), rows)
	})
}
