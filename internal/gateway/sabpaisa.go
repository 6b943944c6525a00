package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	"payrelay/internal/config"
)

// ProtocolVersion 网关初始化接口版本号
const ProtocolVersion = "1"

// Checksum 计算 clientCode|clientTxnID|amount 的 HMAC-SHA256，小写十六进制。
// 字段顺序、分隔符与编码必须与网关一致，否则请求会被拒绝。
func Checksum(clientCode, clientTxnID, amount, authKey string) string {
	mac := hmac.New(sha256.New, []byte(authKey))
	mac.Write([]byte(clientCode + "|" + clientTxnID + "|" + amount))
	return hex.EncodeToString(mac.Sum(nil))
}

// EncodeURIComponent 与 ECMAScript encodeURIComponent 相同的百分号编码：
// 空格编码为 %20，A-Z a-z 0-9 - _ . ! ~ * ' ( ) 保持原样。
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	return uriComponentFixer.Replace(escaped)
}

var uriComponentFixer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// InitRequest 发起支付所需的订单与付款人信息
type InitRequest struct {
	ClientTxnID string
	Amount      string
	PayerName   string
	PayerEmail  string
	PayerMobile string
}

// Client 组装 SabPaisa 跳转链接
type Client struct {
	cfg config.GatewayConfig
}

func NewClient(cfg config.GatewayConfig) *Client {
	if cfg.InitURL == "" {
		cfg.InitURL = config.DefaultInitURL
	}
	return &Client{cfg: cfg}
}

func (c *Client) Checksum(clientTxnID, amount string) string {
	return Checksum(c.cfg.ClientCode, clientTxnID, amount, c.cfg.AuthKey)
}

// PaymentURL 按网关要求的固定顺序拼接查询参数。
// 只有付款人姓名和邮箱做百分号编码，其余值原样写入，包括交易账号密码。
func (c *Client) PaymentURL(req InitRequest) string {
	var b strings.Builder
	b.WriteString(c.cfg.InitURL)
	b.WriteString("?v=" + ProtocolVersion)
	b.WriteString("&clientCode=" + c.cfg.ClientCode)
	b.WriteString("&transUserName=" + c.cfg.Username)
	b.WriteString("&transUserPassword=" + c.cfg.Password)
	b.WriteString("&clientTxnId=" + req.ClientTxnID)
	b.WriteString("&amount=" + req.Amount)
	b.WriteString("&payerName=" + EncodeURIComponent(req.PayerName))
	b.WriteString("&payerEmail=" + EncodeURIComponent(req.PayerEmail))
	b.WriteString("&payerMobile=" + req.PayerMobile)
	b.WriteString("&callbackUrl=" + c.cfg.CallbackURL)
	b.WriteString("&checksum=" + c.Checksum(req.ClientTxnID, req.Amount))
	return b.String()
}
