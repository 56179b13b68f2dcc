// C:\Users\wasab\OneDrive\デスクトップ\REGI\routes.go
package main

import (
	"net/http"

	"regi/advisor"
	"regi/cart"
	"regi/scanner"
)

func SetupRoutes(mux *http.ServeMux, engine *cart.Engine, advisorClient *advisor.Client, scans *scanner.Manager) {

	mux.HandleFunc("/api/cart", CartViewHandler(engine))
	mux.HandleFunc("/api/cart/add", AddToCartHandler(engine))
	mux.HandleFunc("/api/cart/remove", RemoveFromCartHandler(engine))
	mux.HandleFunc("/api/cart/quantity", SetQuantityHandler(engine))
	mux.HandleFunc("/api/cart/adjust", AdjustQuantityHandler(engine))
	mux.HandleFunc("/api/cart/clear", ClearCartHandler(engine))
	mux.HandleFunc("/api/cart/undo", UndoHandler(engine))
	mux.HandleFunc("/api/checkout", CheckoutHandler(engine))

	mux.HandleFunc("/api/products", ListProductsHandler(engine))
	mux.HandleFunc("/api/products/add", AddProductHandler(engine))
	mux.HandleFunc("/api/products/restock", RestockHandler(engine))
	mux.HandleFunc("/api/products/by_barcode/", GetProductByBarcodeHandler(engine))
	mux.HandleFunc("/api/products/low_stock", LowStockHandler(engine))
	mux.HandleFunc("/api/products/import", ImportProductsCSVHandler(engine))
	mux.HandleFunc("/api/products/export", ExportProductsCSVHandler(engine))
	mux.HandleFunc("/api/threshold", ThresholdHandler(engine))

	mux.HandleFunc("/api/sales", ListSalesHandler(engine))
	mux.HandleFunc("/api/sales/daily", DailySummaryHandler(engine))
	mux.HandleFunc("/api/sales/export", ExportSalesCSVHandler(engine))
	mux.HandleFunc("/api/sales/receipt/", ReceiptHandler(engine))

	mux.HandleFunc("/api/advice", GetAdviceHandler(engine, advisorClient))

	mux.HandleFunc("/api/scan/start", StartScanHandler(scans))
	mux.HandleFunc("/api/scan/report", ReportScanHandler(scans, engine))
	mux.HandleFunc("/api/scan/fail", FailScanHandler(scans))
	mux.HandleFunc("/api/scan/status/", ScanStatusHandler(scans))
	mux.HandleFunc("/api/scan/stop", StopScanHandler(scans))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
