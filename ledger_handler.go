// C:\Users\wasab\OneDrive\デスクトップ\REGI\ledger_handler.go
package main

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"regi/cart"
	"regi/ledger"
	"regi/model"
)

// parseSalesFilter はクエリ文字列から売上の絞り込み条件を組み立てます。
// start/end は YYYYMMDD 形式、method は支払い方法の値です。
func parseSalesFilter(r *http.Request) ledger.Filter {
	q := r.URL.Query()
	return ledger.Filter{
		Start:  q.Get("start"),
		End:    q.Get("end"),
		Method: model.PaymentMethod(q.Get("method")),
	}
}

// ListSalesHandler は売上履歴を新しい順に返します。
func ListSalesHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Sales(parseSalesFilter(r)))
	}
}

// DailySummaryHandler は日別の売上集計を返します。
func DailySummaryHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.DailySummaries(parseSalesFilter(r)))
	}
}

// ExportSalesCSVHandler は売上履歴をCSVでダウンロードさせます。
func ExportSalesCSVHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sales := engine.Sales(parseSalesFilter(r))

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

		header := []string{"日時", "売上ID", "支払い方法", "点数", "合計金額"}
		buf.WriteString(strings.Join(header, ",") + "\r\n")

		for _, s := range sales {
			record := []string{
				s.Timestamp.Local().Format("2006/01/02 15:04:05"),
				quoteAll(s.ID),
				s.PaymentMethod.Label(),
				fmt.Sprintf("%d", s.UnitCount()),
				fmt.Sprintf("%.0f", s.Total),
			}
			buf.WriteString(strings.Join(record, ",") + "\r\n")
		}

		filename := fmt.Sprintf("売上履歴_%s.csv", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

// ReceiptHandler はレシート表示用に売上1件を返します。
func ReceiptHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/sales/receipt/")
		if id == "" {
			writeJSONError(w, "売上IDを指定してください。", http.StatusBadRequest)
			return
		}
		sale, found := engine.FindSale(id)
		if !found {
			log.Printf("WARN: receipt requested for unknown sale %s", id)
			writeJSONError(w, "売上が見つかりません。", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]interface{}{
			"sale":         sale,
			"paymentLabel": sale.PaymentMethod.Label(),
		})
	}
}
