// C:\Users\wasab\OneDrive\デスクトップ\REGI\scan_handler.go
package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"regi/cart"
	"regi/scanner"
)

// StartScanHandler は新しいスキャンセッションを開始します。
func StartScanHandler(scans *scanner.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, scans.Start())
	}
}

// ReportScanHandler はカメラが読み取ったコードを受け取り、該当商品が
// あれば応答に含めます。
func ReportScanHandler(scans *scanner.Manager, engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			SessionID string `json:"sessionId"`
			Code      string `json:"code"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}

		view, accepted := scans.Report(req.SessionID, req.Code)
		resp := map[string]interface{}{
			"session":  view,
			"accepted": accepted,
		}
		if accepted {
			if p, found := engine.FindByBarcode(req.Code); found {
				resp["product"] = p
			}
		}
		writeJSON(w, resp)
	}
}

// FailScanHandler はカメラ起動の失敗理由を記録します。
func FailScanHandler(scans *scanner.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			SessionID string `json:"sessionId"`
			Reason    string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}
		view, _ := scans.Fail(req.SessionID, req.Reason)
		writeJSON(w, map[string]interface{}{"session": view})
	}
}

// ScanStatusHandler はセッションの現在状態を返します。
func ScanStatusHandler(scans *scanner.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimPrefix(r.URL.Path, "/api/scan/status/")
		if sessionID == "" {
			writeJSONError(w, "セッションIDを指定してください。", http.StatusBadRequest)
			return
		}
		view, found := scans.Status(sessionID)
		if !found {
			writeJSONError(w, "セッションが見つかりません。", http.StatusNotFound)
			return
		}
		writeJSON(w, view)
	}
}

// StopScanHandler はセッションを閉じます。何度呼んでも安全です。
func StopScanHandler(scans *scanner.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			SessionID string `json:"sessionId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}
		writeJSON(w, scans.Stop(req.SessionID))
	}
}
