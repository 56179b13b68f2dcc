// C:\Users\wasab\OneDrive\デスクトップ\REGI\stock_handler.go
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"regi/cart"
	"regi/parsers"
	"regi/stock"
)

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ListProductsHandler は商品マスタの全件を返します。
func ListProductsHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Products())
	}
}

// AddProductHandler は商品を1件登録します。
func AddProductHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Name     string  `json:"name"`
			Price    float64 `json:"price"`
			Stock    int     `json:"stock"`
			MinStock int     `json:"minStock"`
			Barcode  string  `json:"barcode"`
			Image    string  `json:"image"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeJSONError(w, "商品名を入力してください。", http.StatusBadRequest)
			return
		}

		p, err := engine.AddProduct(stock.NewProduct{
			Name:     req.Name,
			Price:    req.Price,
			Stock:    req.Stock,
			MinStock: req.MinStock,
			Barcode:  req.Barcode,
			Image:    req.Image,
		})
		if err != nil {
			switch {
			case errors.Is(err, stock.ErrInvalidPrice):
				writeJSONError(w, "価格は0以上で入力してください。", http.StatusBadRequest)
			case errors.Is(err, stock.ErrInvalidStock):
				writeJSONError(w, "在庫数は0以上で入力してください。", http.StatusBadRequest)
			default:
				log.Printf("Error adding product: %v", err)
				writeJSONError(w, "商品の登録に失敗しました。", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, map[string]interface{}{
			"message": "商品を登録しました。",
			"product": p,
		})
	}
}

// RestockHandler は商品の入荷を登録します。
func RestockHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			ID     string `json:"id"`
			Amount int    `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}
		if req.Amount <= 0 {
			writeJSONError(w, "入荷数量は1以上で指定してください。", http.StatusBadRequest)
			return
		}

		if !engine.Restock(req.ID, req.Amount) {
			writeJSON(w, map[string]interface{}{"message": "対象の商品が見つかりませんでした。"})
			return
		}
		writeJSON(w, map[string]interface{}{"message": fmt.Sprintf("%d個の入荷を登録しました。", req.Amount)})
	}
}

// GetProductByBarcodeHandler はバーコードで商品を検索します。
func GetProductByBarcodeHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(r.URL.Path, "/api/products/by_barcode/")
		if code == "" {
			writeJSONError(w, "バーコードを指定してください。", http.StatusBadRequest)
			return
		}
		p, found := engine.FindByBarcode(code)
		if !found {
			log.Printf("INFO: no product for barcode %s", code)
			writeJSONError(w, "該当する商品が見つかりません。", http.StatusNotFound)
			return
		}
		writeJSON(w, p)
	}
}

// LowStockHandler は在庫が発注点以下の商品を返します。
func LowStockHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := engine.LowStock()
		writeJSON(w, map[string]interface{}{
			"threshold": engine.Threshold(),
			"products":  products,
			"count":     len(products),
		})
	}
}

// ImportProductsCSVHandler は商品マスタCSVを取り込みます。
// UTF-8 / Shift-JIS のどちらのCSVも受け付けます。
func ImportProductsCSVHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			writeJSONError(w, "CSVファイルの読み取りに失敗: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeJSONError(w, "CSVファイルの読み取りに失敗: "+err.Error(), http.StatusBadRequest)
			return
		}

		records, err := parsers.DecodeCatalogCSV(data)
		if err != nil {
			writeJSONError(w, "CSVファイルの解析に失敗: "+err.Error(), http.StatusBadRequest)
			return
		}

		batch := make([]stock.NewProduct, 0, len(records))
		for _, rec := range records {
			batch = append(batch, stock.NewProduct{
				Name:     rec.Name,
				Price:    rec.Price,
				Stock:    rec.Stock,
				MinStock: rec.MinStock,
				Barcode:  rec.Barcode,
			})
		}

		added, skipped := engine.ImportCatalog(batch)
		log.Printf("INFO: catalog import: %d added, %d skipped", added, skipped)
		writeJSON(w, map[string]interface{}{
			"message": fmt.Sprintf("%d件の商品を取り込みました。(スキップ %d件)", added, skipped),
			"added":   added,
			"skipped": skipped,
		})
	}
}

// ExportProductsCSVHandler は商品マスタをCSVでダウンロードさせます。
func ExportProductsCSVHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := engine.Products()

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

		header := []string{"商品名", "価格", "在庫数", "発注点", "バーコード"}
		buf.WriteString(strings.Join(header, ",") + "\r\n")

		for _, p := range products {
			record := []string{
				quoteAll(p.Name),
				fmt.Sprintf("%.0f", p.Price),
				fmt.Sprintf("%d", p.Stock),
				fmt.Sprintf("%d", p.MinStock),
				quoteAll(p.Barcode),
			}
			buf.WriteString(strings.Join(record, ",") + "\r\n")
		}

		filename := fmt.Sprintf("商品一覧_%s.csv", time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

// ThresholdHandler は全体の発注点の取得と保存を行います。
func ThresholdHandler(engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, map[string]interface{}{"threshold": engine.Threshold()})
		case http.MethodPost:
			var req struct {
				Threshold int `json:"threshold"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
				return
			}
			if req.Threshold < 0 {
				writeJSONError(w, "発注点は0以上で指定してください。", http.StatusBadRequest)
				return
			}
			engine.SetThreshold(req.Threshold)
			writeJSON(w, map[string]interface{}{"message": "発注点を保存しました。"})
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	}
}
