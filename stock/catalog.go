// C:\Users\wasab\OneDrive\デスクトップ\REGI\stock\catalog.go
package stock

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"regi/barcode"
	"regi/model"
)

var (
	ErrInvalidPrice = errors.New("price must not be negative")
	ErrInvalidStock = errors.New("stock must not be negative")
)

// NewProduct は商品登録の入力です。
type NewProduct struct {
	Name     string
	Price    float64
	Stock    int
	MinStock int
	Barcode  string
	Image    string
}

// Catalog は商品マスタの所有者です。カート予約との整合はエンジン側が
// ロックを握って管理するため、Catalog 自体はロックを持ちません。
type Catalog struct {
	products  []model.Product
	threshold int
}

func NewCatalog(defaultThreshold int) *Catalog {
	return &Catalog{threshold: defaultThreshold}
}

// Load は起動時に永続化済みの商品リストと発注点を取り込みます。
func (c *Catalog) Load(products []model.Product, threshold int) {
	c.products = model.CloneProducts(products)
	if threshold > 0 {
		c.threshold = threshold
	}
}

// All は商品リストの独立したコピーを返します。
func (c *Catalog) All() []model.Product {
	return model.CloneProducts(c.products)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID は商品への生ポインタを返します (未登録なら nil)。
// エンジンが在庫の増減に使います。
func (c *Catalog) ByID(id string) *model.Product {
	for i := range c.products {
		if c.products[i].ID == id {
			return &c.products[i]
		}
	}
	return nil
}

// AddProduct は価格と在庫数を検証し、新しいIDを採番して商品を追加します。
// 商品名・バーコードの重複は許容します (同名商品の併売は仕様です)。
func (c *Catalog) AddProduct(in NewProduct) (model.Product, error) {
	if in.Price < 0 {
		return model.Product{}, ErrInvalidPrice
	}
	if in.Stock < 0 {
		return model.Product{}, ErrInvalidStock
	}

	p := model.Product{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		Stock:    in.Stock,
		MinStock: in.MinStock,
		Barcode:  canonicalBarcode(in.Barcode),
		Image:    in.Image,
	}
	c.products = append(c.products, p)
	return p, nil
}

// Restock は在庫数に amount を加算します。未知のIDは何もしません。
func (c *Catalog) Restock(id string, amount int) bool {
	p := c.ByID(id)
	if p == nil {
		return false
	}
	p.Stock += amount
	return true
}

// FindByBarcode は正規化済みコードの完全一致で商品を検索します。
func (c *Catalog) FindByBarcode(code string) (model.Product, bool) {
	want := canonicalBarcode(code)
	if want == "" {
		return model.Product{}, false
	}
	for _, p := range c.products {
		if p.Barcode == want {
			return p, true
		}
	}
	return model.Product{}, false
}

// LowStock は在庫が発注点以下の商品を返します。
// 商品ごとの発注点が未設定 (0以下) の場合は全体の発注点を使います。
func (c *Catalog) LowStock() []model.Product {
	var out []model.Product
	for _, p := range c.products {
		limit := p.MinStock
		if limit <= 0 {
			limit = c.threshold
		}
		if p.Stock <= limit {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) SetThreshold(n int) {
	c.threshold = n
}

func (c *Catalog) Threshold() int {
	return c.threshold
}

// ReplaceAll は商品リスト全体を入れ替えます (アンドゥ復元・CSV取込用)。
func (c *Catalog) ReplaceAll(products []model.Product) {
	c.products = model.CloneProducts(products)
}

// canonicalBarcode は保存・照合用にコードを正規化します。
// 正規化できない形式は空白除去のみ行いそのまま扱います。
func canonicalBarcode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	normalized, err := barcode.Normalize(code)
	if err != nil {
		return code
	}
	return normalized
}
