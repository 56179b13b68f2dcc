// C:\Users\wasab\OneDrive\デスクトップ\REGI\config_handler.go
package main

import (
	"encoding/json"
	"log"
	"net/http"

	"regi/config"
)

// maskedAPIKey は設定画面に実際のキーを出さないための伏せ字です。
const maskedAPIKey = "********"

// ヘルパー関数: エラーをJSONで返す
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler は現在の設定を返します。APIキーは伏せ字にします。
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		if cfg.AdvisorAPIKey != "" {
			cfg.AdvisorAPIKey = maskedAPIKey
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler は設定を保存します。伏せ字のまま送られたAPIキーは
// 変更なしとみなして保存済みの値を引き継ぎます。
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}

		if newCfg.UndoSeconds < 0 {
			writeJSONError(w, "取り消しの猶予秒数は0以上で指定してください。", http.StatusBadRequest)
			return
		}
		if newCfg.LowStockThreshold < 0 {
			writeJSONError(w, "発注点は0以上で指定してください。", http.StatusBadRequest)
			return
		}

		if newCfg.AdvisorAPIKey == maskedAPIKey {
			newCfg.AdvisorAPIKey = config.GetConfig().AdvisorAPIKey
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			writeJSONError(w, "設定の保存に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "設定を保存しました。一部の設定は再起動後に反映されます。"})
	}
}
