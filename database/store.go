// C:\Users\wasab\OneDrive\デスクトップ\REGI\database\store.go
package database

// アプリ状態の保存キー。値はすべてJSON文字列です。
const (
	KeyProducts          = "products"
	KeySales             = "sales"
	KeyCart              = "cart"
	KeyLowStockThreshold = "lowStockThreshold"
)

// Store はキー→JSON文字列の読み書きを行う永続化層です。
// 本番は SQLiteStore、テストは MemoryStore を使います。
type Store interface {
	// Get はキーの値を返します。未保存のキーは ok=false です。
	Get(key string) (value string, ok bool, err error)
	// Set はキーの値を保存します (上書き)。
	Set(key, value string) error
}
