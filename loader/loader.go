package loader

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"regi/database"
	"regi/model"
)

// InitDatabase はデータベーススキーマを適用します。
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying database schema...")
	schemaBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("could not read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	log.Println("Schema applied successfully.")
	return nil
}

// AppState は起動時に読み込んだ永続状態の器です。
type AppState struct {
	Products  []model.Product
	Sales     []model.Sale
	Cart      []model.CartItem
	Threshold int
}

// LoadState は保存済みの4キーを読み込んで初期状態を組み立てます。
// 読めないキーや壊れたキーは警告を出して、そのキーだけ空から始めます。
func LoadState(store database.Store, defaultThreshold int) AppState {
	state := AppState{Threshold: defaultThreshold}

	loadJSONKey(store, database.KeyProducts, &state.Products)
	loadJSONKey(store, database.KeySales, &state.Sales)
	loadJSONKey(store, database.KeyCart, &state.Cart)

	var threshold int
	if loadJSONKey(store, database.KeyLowStockThreshold, &threshold) && threshold > 0 {
		state.Threshold = threshold
	}

	log.Printf("INFO: loaded state: %d products, %d sales, %d cart items, threshold %d",
		len(state.Products), len(state.Sales), len(state.Cart), state.Threshold)
	return state
}

// loadJSONKey は1キーぶんのJSONを dst に読み込みます。読めたら true です。
func loadJSONKey(store database.Store, key string, dst interface{}) bool {
	raw, ok, err := store.Get(key)
	if err != nil {
		log.Printf("WARN: failed to read persisted %s, starting empty: %v", key, err)
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("WARN: malformed persisted %s, starting empty: %v", key, err)
		return false
	}
	return true
}
