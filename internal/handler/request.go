package handler

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var errUnsupportedScalar = errors.New("只接受字符串、数字、布尔或 null")

// scalar 保存一个 JSON 标量按 JavaScript 模板字符串渲染后的文本：
// 字符串原样保留，数字按 Number#toString 输出，"100.00" 与 100.00 因此不同。
// truthy 与 JavaScript 的真值判断一致：""、0、false、null 以及缺省均为假。
type scalar struct {
	text   string
	truthy bool
}

func (s *scalar) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*s = scalar{}
	case raw == "true", raw == "false":
		*s = scalar{text: raw, truthy: raw == "true"}
	case strings.HasPrefix(raw, `"`):
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = scalar{text: v, truthy: v != ""}
	case strings.HasPrefix(raw, "{"), strings.HasPrefix(raw, "["):
		return errUnsupportedScalar
	default:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		*s = scalar{text: jsNumberString(f), truthy: f != 0}
	}
	return nil
}

func (s scalar) String() string {
	return s.text
}

func (s scalar) Truthy() bool {
	return s.truthy
}

// jsNumberString 与 JavaScript Number#toString 相同的最短十进制表示
func jsNumberString(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	// 指数形式：Go 输出 1e-07，JavaScript 输出 1e-7
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	UserID        scalar          `json:"userId"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
}

// InitPaymentRequest 发起支付请求。amount 不做数值转换，原文本参与签名
type InitPaymentRequest struct {
	OrderID     scalar `json:"orderId"`
	Amount      scalar `json:"amount"`
	PayerName   string `json:"payerName"`
	PayerEmail  string `json:"payerEmail"`
	PayerMobile scalar `json:"payerMobile"`
}

func (r *InitPaymentRequest) orderID() (int64, error) {
	return strconv.ParseInt(r.OrderID.String(), 10, 64)
}

// CallbackRequest 网关回调，可能是 JSON 也可能是表单
type CallbackRequest struct {
	ClientTxnID string `json:"clientTxnId" form:"clientTxnId"`
	Status      string `json:"status" form:"status"`
}
