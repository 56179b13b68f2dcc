// C:\Users\wasab\OneDrive\デスクトップ\REGI\stock\catalog_test.go
package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regi/model"
)

func TestCatalog_AddProduct(t *testing.T) {
	c := NewCatalog(5)

	p, err := c.AddProduct(NewProduct{Name: "ドリップコーヒー", Price: 1000, Stock: 5, MinStock: 2})

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "ドリップコーヒー", p.Name)
	assert.Equal(t, 1000.0, p.Price)
	assert.Equal(t, 5, p.Stock)
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_AddProduct_NegativePrice(t *testing.T) {
	c := NewCatalog(5)

	_, err := c.AddProduct(NewProduct{Name: "コーヒー", Price: -1, Stock: 5})

	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Zero(t, c.Len())
}

func TestCatalog_AddProduct_NegativeStock(t *testing.T) {
	c := NewCatalog(5)

	_, err := c.AddProduct(NewProduct{Name: "コーヒー", Price: 100, Stock: -1})

	assert.ErrorIs(t, err, ErrInvalidStock)
	assert.Zero(t, c.Len())
}

func TestCatalog_AddProduct_DuplicatesPermitted(t *testing.T) {
	c := NewCatalog(5)

	p1, err := c.AddProduct(NewProduct{Name: "コーヒー", Price: 500, Stock: 1, Barcode: "4901234567894"})
	require.NoError(t, err)
	p2, err := c.AddProduct(NewProduct{Name: "コーヒー", Price: 500, Stock: 1, Barcode: "4901234567894"})
	require.NoError(t, err)

	assert.NotEqual(t, p1.ID, p2.ID)
	assert.Equal(t, 2, c.Len())
}

func TestCatalog_Restock(t *testing.T) {
	c := NewCatalog(5)
	p, err := c.AddProduct(NewProduct{Name: "コーヒー", Price: 500, Stock: 3})
	require.NoError(t, err)

	ok := c.Restock(p.ID, 10)

	assert.True(t, ok)
	assert.Equal(t, 13, c.ByID(p.ID).Stock)
}

func TestCatalog_Restock_UnknownIDIsNoop(t *testing.T) {
	c := NewCatalog(5)
	_, err := c.AddProduct(NewProduct{Name: "コーヒー", Price: 500, Stock: 3})
	require.NoError(t, err)

	ok := c.Restock("no-such-id", 10)

	assert.False(t, ok)
	assert.Equal(t, 3, c.All()[0].Stock)
}

func TestCatalog_FindByBarcode_NormalizesBothSides(t *testing.T) {
	c := NewCatalog(5)
	// 全角数字の手入力で登録しても正規化されて保存される
	p, err := c.AddProduct(NewProduct{Name: "コーヒー", Price: 500, Stock: 3, Barcode: "４９０１２３４５６７８９４"})
	require.NoError(t, err)
	assert.Equal(t, "4901234567894", p.Barcode)

	// スキャナからの半角JAN-13でも同じ商品に解決される
	found, ok := c.FindByBarcode("4901234567894")
	require.True(t, ok)
	assert.Equal(t, p.ID, found.ID)

	_, ok = c.FindByBarcode("4902345678905")
	assert.False(t, ok)
}

func TestCatalog_FindByBarcode_KeepsNonStandardCodeAsTyped(t *testing.T) {
	c := NewCatalog(5)
	// 規格外の店内コードは入力のまま保存・照合される
	p, err := c.AddProduct(NewProduct{Name: "量り売り", Price: 100, Stock: 3, Barcode: "S-0042"})
	require.NoError(t, err)
	assert.Equal(t, "S-0042", p.Barcode)

	found, ok := c.FindByBarcode("S-0042")
	require.True(t, ok)
	assert.Equal(t, p.ID, found.ID)
}

func TestCatalog_FindByBarcode_EmptyNeverMatches(t *testing.T) {
	c := NewCatalog(5)
	_, err := c.AddProduct(NewProduct{Name: "バーコードなし", Price: 100, Stock: 1})
	require.NoError(t, err)

	_, ok := c.FindByBarcode("")

	assert.False(t, ok)
}

func TestCatalog_LowStock(t *testing.T) {
	c := NewCatalog(5)
	_, err := c.AddProduct(NewProduct{Name: "十分", Price: 100, Stock: 20})
	require.NoError(t, err)
	_, err = c.AddProduct(NewProduct{Name: "全体の発注点以下", Price: 100, Stock: 5})
	require.NoError(t, err)
	_, err = c.AddProduct(NewProduct{Name: "個別の発注点以下", Price: 100, Stock: 8, MinStock: 10})
	require.NoError(t, err)

	low := c.LowStock()

	require.Len(t, low, 2)
	assert.Equal(t, "全体の発注点以下", low[0].Name)
	assert.Equal(t, "個別の発注点以下", low[1].Name)
}

func TestCatalog_SetThreshold(t *testing.T) {
	c := NewCatalog(5)
	_, err := c.AddProduct(NewProduct{Name: "コーヒー", Price: 100, Stock: 8})
	require.NoError(t, err)

	assert.Empty(t, c.LowStock())

	c.SetThreshold(10)
	assert.Equal(t, 10, c.Threshold())
	assert.Len(t, c.LowStock(), 1)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := NewCatalog(5)
	p, err := c.AddProduct(NewProduct{Name: "コーヒー", Price: 100, Stock: 8})
	require.NoError(t, err)

	list := c.All()
	list[0].Stock = 0

	assert.Equal(t, 8, c.ByID(p.ID).Stock)
}

func TestCatalog_ReplaceAll(t *testing.T) {
	c := NewCatalog(5)
	_, err := c.AddProduct(NewProduct{Name: "古い商品", Price: 100, Stock: 8})
	require.NoError(t, err)

	replacement := []model.Product{
		{ID: "p1", Name: "新しい商品", Price: 200, Stock: 3},
	}
	c.ReplaceAll(replacement)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "新しい商品", c.All()[0].Name)

	// 入れ替え後も元のスライスとは独立している
	replacement[0].Stock = 99
	assert.Equal(t, 3, c.ByID("p1").Stock)
}
