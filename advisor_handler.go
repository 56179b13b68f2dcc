// C:\Users\wasab\OneDrive\デスクトップ\REGI\advisor_handler.go
package main

import (
	"errors"
	"log"
	"net/http"

	"regi/advisor"
	"regi/cart"
	"regi/ledger"
)

// GetAdviceHandler は在庫と売上の要約をAIに渡してアドバイス文を返します。
// 実行中の二重リクエストだけエラーにし、サービス障害は定型文で返します。
func GetAdviceHandler(engine *cart.Engine, client *advisor.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		advice, fallback, err := client.Advise(r.Context(), engine.Products(), engine.Sales(ledger.Filter{}))
		if err != nil {
			if errors.Is(err, advisor.ErrBusy) {
				writeJSONError(w, "アドバイスを生成中です。完了までお待ちください。", http.StatusTooManyRequests)
				return
			}
			log.Printf("Error generating advice: %v", err)
			writeJSONError(w, "アドバイスの生成に失敗しました。", http.StatusInternalServerError)
			return
		}

		writeJSON(w, map[string]interface{}{
			"advice":   advice,
			"fallback": fallback,
		})
	}
}
