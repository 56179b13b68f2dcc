// C:\Users\wasab\OneDrive\デスクトップ\REGI\cart\engine.go
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"regi/database"
	"regi/ledger"
	"regi/model"
	"regi/stock"
	"regi/undo"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrItemNotFound      = errors.New("cart item not found")
	ErrOutOfStock        = errors.New("out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidPayment    = errors.New("invalid payment method")
	ErrNothingToUndo     = errors.New("nothing to undo")
)

// Engine はアプリ状態 (商品マスタ・カート・売上・アンドゥ) の唯一の所有者です。
// HTTPハンドラは並行に走るため、すべての読み書きを1本のロックで直列化します。
//
// カート中の商品の在庫表示は「残り販売可能数」です。カートの増減は必ず
// 在庫の増減と対で行い、明示的な入荷と会計以外では
// 商品在庫 + カート内数量 が一定に保たれます。
type Engine struct {
	mu      sync.Mutex
	store   database.Store
	catalog *stock.Catalog
	sales   *ledger.Ledger
	undoMgr *undo.Manager
	items   []model.CartItem
	now     func() time.Time
	subs    []func(Event)
}

func NewEngine(store database.Store, catalog *stock.Catalog, sales *ledger.Ledger, undoMgr *undo.Manager) *Engine {
	return &Engine{
		store:   store,
		catalog: catalog,
		sales:   sales,
		undoMgr: undoMgr,
		now:     time.Now,
	}
}

// LoadCart は起動時に永続化済みのカートを取り込みます。
func (e *Engine) LoadCart(items []model.CartItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = model.CloneCart(items)
}

// Subscribe はイベント購読を登録します。コールバックはロックの外で
// 呼ばれるため、エンジンのメソッドを呼び返しても構いません。
func (e *Engine) Subscribe(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

func (e *Engine) emit(ev Event) {
	e.mu.Lock()
	subs := make([]func(Event), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// AddToCart は商品を1点カートに確保します。在庫が無い場合は状態を変えずに
// ErrOutOfStock を返します。
func (e *Engine) AddToCart(productID string) error {
	e.mu.Lock()
	p := e.catalog.ByID(productID)
	if p == nil {
		e.mu.Unlock()
		return ErrProductNotFound
	}
	if p.Stock <= 0 {
		e.mu.Unlock()
		return ErrOutOfStock
	}

	e.captureUndo(fmt.Sprintf("%s を追加しました", p.Name))

	if item := e.itemByID(productID); item != nil {
		item.Quantity++
	} else {
		e.items = append(e.items, model.CartItem{Product: *p, Quantity: 1})
	}
	p.Stock--

	e.persistCart()
	e.persistProducts()
	name := p.Name
	e.mu.Unlock()

	e.emit(Event{Type: EventItemReserved, ProductID: productID, Name: name})
	return nil
}

// RemoveFromCart は明細を削除し、数量ぶんの在庫を商品へ戻します。
func (e *Engine) RemoveFromCart(itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.itemIndex(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}

	e.captureUndo(fmt.Sprintf("%s を削除しました", e.items[idx].Name))
	e.removeLocked(idx)

	e.persistCart()
	e.persistProducts()
	return nil
}

// SetQuantity は明細の数量を絶対値で変更します。0以下は削除と同じです。
// 増加分の在庫が足りない場合は状態を変えずに ErrInsufficientStock を返します。
func (e *Engine) SetQuantity(itemID string, quantity int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setQuantityLocked(itemID, quantity)
}

// UpdateQuantity は現在数量に delta を加えた値で SetQuantity を行います。
func (e *Engine) UpdateQuantity(itemID string, delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.itemIndex(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	return e.setQuantityLocked(itemID, e.items[idx].Quantity+delta)
}

func (e *Engine) setQuantityLocked(itemID string, quantity int) error {
	idx := e.itemIndex(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	item := &e.items[idx]

	if quantity <= 0 {
		e.captureUndo(fmt.Sprintf("%s を削除しました", item.Name))
		e.removeLocked(idx)
		e.persistCart()
		e.persistProducts()
		return nil
	}

	p := e.catalog.ByID(itemID)
	if p == nil {
		return ErrProductNotFound
	}

	delta := quantity - item.Quantity
	if delta > 0 && p.Stock < delta {
		return ErrInsufficientStock
	}

	e.captureUndo(fmt.Sprintf("%s の数量を %d に変更しました", item.Name, quantity))
	item.Quantity = quantity
	p.Stock -= delta

	e.persistCart()
	e.persistProducts()
	return nil
}

// ClearCart は全明細の在庫を商品へ戻してカートを空にします。
// 空にする前の状態はアンドゥで復元できます。
func (e *Engine) ClearCart() error {
	e.mu.Lock()
	if len(e.items) == 0 {
		e.mu.Unlock()
		return nil
	}

	e.captureUndo("カートを空にしました")
	for _, item := range e.items {
		if p := e.catalog.ByID(item.ID); p != nil {
			p.Stock += item.Quantity
		}
	}
	e.items = nil

	e.persistCart()
	e.persistProducts()
	e.mu.Unlock()

	e.emit(Event{Type: EventCartCleared})
	return nil
}

// Checkout はカート全体を1件の売上として確定します。合計は依頼側の値を
// 信用せずここで再計算します。確定後はアンドゥできません。
func (e *Engine) Checkout(method model.PaymentMethod) (model.Sale, error) {
	e.mu.Lock()
	if len(e.items) == 0 {
		e.mu.Unlock()
		return model.Sale{}, ErrEmptyCart
	}
	if !method.IsValid() {
		e.mu.Unlock()
		return model.Sale{}, ErrInvalidPayment
	}

	total := 0.0
	for _, item := range e.items {
		total += item.Subtotal()
	}
	sale := model.Sale{
		ID:            uuid.NewString(),
		Items:         model.CloneCart(e.items),
		Total:         total,
		PaymentMethod: method,
		Timestamp:     e.now(),
	}

	e.sales.Prepend(sale)
	e.items = nil
	e.undoMgr.Discard()

	e.persistCart()
	e.persistSales()
	e.mu.Unlock()

	e.emit(Event{Type: EventCheckedOut, SaleID: sale.ID})
	return model.CloneSale(sale), nil
}

// Undo は直前の操作で対にして保存したカートと商品マスタを復元します。
// 復元した操作の説明文を返します。
func (e *Engine) Undo() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, ok := e.undoMgr.Restore()
	if !ok {
		return "", ErrNothingToUndo
	}

	e.items = snap.Cart
	e.catalog.ReplaceAll(snap.Products)

	e.persistCart()
	e.persistProducts()
	return snap.Message, nil
}

// UndoInfo はアンドゥ可能な操作の表示情報です。
type UndoInfo struct {
	Message     string `json:"message"`
	RemainingMs int64  `json:"remainingMs"`
}

// View はカート画面の表示用スナップショットです。
type View struct {
	Items []model.CartItem `json:"items"`
	Total float64          `json:"total"`
	Count int              `json:"count"`
	Undo  *UndoInfo        `json:"undo,omitempty"`
}

// CartView は現在のカートとアンドゥ可否を返します。
func (e *Engine) CartView() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := View{Items: model.CloneCart(e.items)}
	if v.Items == nil {
		v.Items = []model.CartItem{}
	}
	for _, item := range v.Items {
		v.Total += item.Subtotal()
		v.Count += item.Quantity
	}
	if message, remaining, ok := e.undoMgr.Pending(); ok {
		v.Undo = &UndoInfo{Message: message, RemainingMs: remaining.Milliseconds()}
	}
	return v
}

// --- 商品マスタ操作 (Catalog への直列化窓口) ---

func (e *Engine) Products() []model.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.All()
}

func (e *Engine) AddProduct(in stock.NewProduct) (model.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.catalog.AddProduct(in)
	if err != nil {
		return model.Product{}, err
	}
	e.persistProducts()
	return p, nil
}

// ImportCatalog はCSV取込の商品をまとめて追加します。検証に落ちた行は
// 読み飛ばして件数を返します。
func (e *Engine) ImportCatalog(batch []stock.NewProduct) (added, skipped int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, in := range batch {
		if _, err := e.catalog.AddProduct(in); err != nil {
			log.Printf("WARN: skipping catalog row %q: %v", in.Name, err)
			skipped++
			continue
		}
		added++
	}
	if added > 0 {
		e.persistProducts()
	}
	return added, skipped
}

// Restock は商品在庫に amount を加算します。未知のIDは何もしません。
func (e *Engine) Restock(id string, amount int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.catalog.Restock(id, amount) {
		log.Printf("WARN: restock for unknown product id %s ignored", id)
		return false
	}
	e.persistProducts()
	return true
}

func (e *Engine) FindByBarcode(code string) (model.Product, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.FindByBarcode(code)
}

func (e *Engine) LowStock() []model.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.LowStock()
}

func (e *Engine) Threshold() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.Threshold()
}

func (e *Engine) SetThreshold(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.catalog.SetThreshold(n)
	e.persistThreshold()
}

// --- 売上参照 (Ledger への直列化窓口) ---

func (e *Engine) Sales(f ledger.Filter) []model.Sale {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sales.Filtered(f)
}

func (e *Engine) DailySummaries(f ledger.Filter) []model.DailySummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sales.DailySummaries(f)
}

func (e *Engine) FindSale(id string) (model.Sale, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sales.Find(id)
}

// --- 内部ヘルパー (ロック保持前提) ---

func (e *Engine) itemIndex(id string) int {
	for i := range e.items {
		if e.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) itemByID(id string) *model.CartItem {
	if idx := e.itemIndex(id); idx >= 0 {
		return &e.items[idx]
	}
	return nil
}

// removeLocked は明細を消し、数量ぶんの在庫を商品へ戻します。
func (e *Engine) removeLocked(idx int) {
	item := e.items[idx]
	if p := e.catalog.ByID(item.ID); p != nil {
		p.Stock += item.Quantity
	}
	e.items = append(e.items[:idx], e.items[idx+1:]...)
}

func (e *Engine) captureUndo(message string) {
	e.undoMgr.Capture(e.items, e.catalog.All(), message)
}

// 永続化はメモリ状態更新後の副作用で、失敗してもログに残すだけで
// 操作自体は成功扱いにします。
func (e *Engine) persistJSON(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ERROR: failed to encode %s: %v", key, err)
		return
	}
	if err := e.store.Set(key, string(data)); err != nil {
		log.Printf("ERROR: failed to persist %s: %v", key, err)
	}
}

func (e *Engine) persistCart()      { e.persistJSON(database.KeyCart, e.items) }
func (e *Engine) persistProducts()  { e.persistJSON(database.KeyProducts, e.catalog.All()) }
func (e *Engine) persistSales()     { e.persistJSON(database.KeySales, e.sales.All()) }
func (e *Engine) persistThreshold() { e.persistJSON(database.KeyLowStockThreshold, e.catalog.Threshold()) }
