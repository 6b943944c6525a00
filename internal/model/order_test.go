package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxnIDForOrder(t *testing.T) {
	assert.Equal(t, "ORD_42", TxnIDForOrder(42))
	assert.Equal(t, TxnIDForOrder(7), TxnIDForOrder(7))
	assert.NotEqual(t, TxnIDForOrder(7), TxnIDForOrder(70))
}

func TestOrderTableName(t *testing.T) {
	assert.Equal(t, "orders", Order{}.TableName())
}
