// C:\Users\wasab\OneDrive\デスクトップ\REGI\model\pos_types.go
package model

import "time"

// Product は商品マスタの1件を表します。
type Product struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Price    float64 `db:"price" json:"price"`
	Stock    int     `db:"stock" json:"stock"`
	MinStock int     `db:"min_stock" json:"minStock"`
	Barcode  string  `db:"barcode" json:"barcode,omitempty"`
	Image    string  `db:"image" json:"image,omitempty"`
}

// CartItem はカート内の1明細です。商品IDごとに最大1件です。
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal は明細の小計 (単価×数量) を返します。
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}

// PaymentMethod は支払い方法です。
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMobileMoney  PaymentMethod = "MOBILE_MONEY"
)

// IsValid は既知の支払い方法かどうかを返します。
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentBankTransfer, PaymentMobileMoney:
		return true
	}
	return false
}

// Label は画面表示用の名称を返します。
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "現金"
	case PaymentBankTransfer:
		return "銀行振込"
	case PaymentMobileMoney:
		return "モバイル決済"
	}
	return string(m)
}

// Sale は確定済みの売上1件です。作成後は変更されません。
type Sale struct {
	ID            string        `json:"id"`
	Items         []CartItem    `json:"items"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Timestamp     time.Time     `json:"timestamp"`
}

// DateKey は売上のローカル日付 (YYYYMMDD) を返します。
func (s Sale) DateKey() string {
	return s.Timestamp.Local().Format("20060102")
}

// UnitCount は売上に含まれる総点数を返します。
func (s Sale) UnitCount() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

// DailySummary は日別の売上集計です。
type DailySummary struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// CloneProducts は商品リストの独立したコピーを返します。
func CloneProducts(src []Product) []Product {
	if src == nil {
		return nil
	}
	dst := make([]Product, len(src))
	copy(dst, src)
	return dst
}

// CloneCart はカートの独立したコピーを返します。
func CloneCart(src []CartItem) []CartItem {
	if src == nil {
		return nil
	}
	dst := make([]CartItem, len(src))
	copy(dst, src)
	return dst
}

// CloneSale は売上1件の独立したコピーを返します。
func CloneSale(s Sale) Sale {
	out := s
	out.Items = CloneCart(s.Items)
	return out
}
