// C:\Users\wasab\OneDrive\デスクトップ\REGI\cart\events.go
package cart

// EventType はエンジンが発火するUI通知の種別です。
type EventType string

const (
	// EventItemReserved は商品がカートに確保されたときの通知です。
	// フロント側はこれを「カートへ飛ぶ」演出に使います。
	EventItemReserved EventType = "ITEM_RESERVED"
	EventCartCleared  EventType = "CART_CLEARED"
	EventCheckedOut   EventType = "CHECKED_OUT"
)

// Event は状態変化の通知です。エンジンは描画の仕組みを一切知らず、
// 購読側が演出を決めます。
type Event struct {
	Type      EventType `json:"type"`
	ProductID string    `json:"productId,omitempty"`
	Name      string    `json:"name,omitempty"`
	SaleID    string    `json:"saleId,omitempty"`
}
