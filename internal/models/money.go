package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money 金额列类型。价格与订单金额统一走该类型，
// 入库、序列化与比较一律收敛到 2 位小数，避免浮点精度误差。
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 收敛到分精度后构造金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// String 固定输出 2 位小数，如 "118.00"
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}

// MarshalJSON 金额一律以字符串输出
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 接受字符串或数字两种写法，null 保持零值
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		amount, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = amount.Round(2)
		return nil
	}
	amount, err := decimal.NewFromString(string(raw))
	if err != nil {
		return err
	}
	m.Decimal = amount.Round(2)
	return nil
}

// Value 数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}
