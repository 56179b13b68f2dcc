// C:\Users\wasab\OneDrive\デスクトップ\REGI\cart_handler.go
package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"regi/cart"
	"regi/model"
)

// ヘルパー関数: 値をJSONで返す
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeCartError はカート操作のエラーをHTTP応答へ変換します。
// 画面との行き違いで対象が既に無いだけの場合は正常応答として
// 現在のカートをそのまま返します。
func writeCartError(w http.ResponseWriter, engine *cart.Engine, err error) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound), errors.Is(err, cart.ErrItemNotFound):
		log.Printf("WARN: cart operation on missing target: %v", err)
		writeJSON(w, map[string]interface{}{"cart": engine.CartView()})
	case errors.Is(err, cart.ErrOutOfStock):
		writeJSONError(w, "在庫がありません。", http.StatusConflict)
	case errors.Is(err, cart.ErrInsufficientStock):
		writeJSONError(w, "在庫が足りません。", http.StatusConflict)
	case errors.Is(err, cart.ErrEmptyCart):
		writeJSONError(w, "カートが空です。", http.StatusBadRequest)
	case errors.Is(err, cart.ErrInvalidPayment):
		writeJSONError(w, "支払い方法が不正です。", http.StatusBadRequest)
	case errors.Is(err, cart.ErrNothingToUndo):
		writeJSONError(w, "取り消せる操作がありません。", http.StatusConflict)
	default:
		log.Printf("Error in cart operation: %v", err)
		writeJSONError(w, "処理に失敗しました。", http.StatusInternalServerError)
	}
}

// CartViewHandler は現在のカートとアンドゥ可否を返します。
func CartViewHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.CartView())
	}
}

// AddToCartHandler は商品を1点カートに入れます。
func AddToCartHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			ProductID string `json:"productId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}
		if err := engine.AddToCart(req.ProductID); err != nil {
			writeCartError(w, engine, err)
			return
		}
		writeJSON(w, map[string]interface{}{"cart": engine.CartView()})
	}
}

// RemoveFromCartHandler はカートの1明細を削除します。
func RemoveFromCartHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			ItemID string `json:"itemId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}
		if err := engine.RemoveFromCart(req.ItemID); err != nil {
			writeCartError(w, engine, err)
			return
		}
		writeJSON(w, map[string]interface{}{"cart": engine.CartView()})
	}
}

// SetQuantityHandler は明細の数量を絶対値で変更します。
func SetQuantityHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			ItemID   string `json:"itemId"`
			Quantity int    `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}
		if err := engine.SetQuantity(req.ItemID, req.Quantity); err != nil {
			writeCartError(w, engine, err)
			return
		}
		writeJSON(w, map[string]interface{}{"cart": engine.CartView()})
	}
}

// AdjustQuantityHandler は明細の数量を増減します (+1/-1ボタン用)。
func AdjustQuantityHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			ItemID string `json:"itemId"`
			Delta  int    `json:"delta"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}
		if err := engine.UpdateQuantity(req.ItemID, req.Delta); err != nil {
			writeCartError(w, engine, err)
			return
		}
		writeJSON(w, map[string]interface{}{"cart": engine.CartView()})
	}
}

// ClearCartHandler はカートを空にします。確認は画面側で済ませる前提です。
func ClearCartHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := engine.ClearCart(); err != nil {
			writeCartError(w, engine, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"message": "カートを空にしました。",
			"cart":    engine.CartView(),
		})
	}
}

// UndoHandler は直前のカート操作を取り消します。
func UndoHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		undone, err := engine.Undo()
		if err != nil {
			writeCartError(w, engine, err)
			return
		}
		log.Printf("INFO: undo applied: %s", undone)
		writeJSON(w, map[string]interface{}{
			"message": "「" + undone + "」を取り消しました。",
			"cart":    engine.CartView(),
		})
	}
}

// CheckoutHandler はカートを1件の売上として確定します。
func CheckoutHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			PaymentMethod model.PaymentMethod `json:"paymentMethod"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}
		sale, err := engine.Checkout(req.PaymentMethod)
		if err != nil {
			writeCartError(w, engine, err)
			return
		}
		log.Printf("INFO: checkout completed: sale %s total %.0f (%s)", sale.ID, sale.Total, sale.PaymentMethod)
		writeJSON(w, map[string]interface{}{
			"message": "会計が完了しました。",
			"sale":    sale,
			"cart":    engine.CartView(),
		})
	}
}
