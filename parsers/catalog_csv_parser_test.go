// C:\Users\wasab\OneDrive\デスクトップ\REGI\parsers\catalog_csv_parser_test.go
package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func TestParseCatalogCSV_HeaderMapping(t *testing.T) {
	csvData := "バーコード,商品名,価格,在庫数,発注点\n" +
		"4901234567894,ドリップコーヒー,1000,5,2\n" +
		",紅茶,450,10,\n"

	records, err := ParseCatalogCSV(strings.NewReader(csvData))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ドリップコーヒー", records[0].Name)
	assert.Equal(t, 1000.0, records[0].Price)
	assert.Equal(t, 5, records[0].Stock)
	assert.Equal(t, 2, records[0].MinStock)
	assert.Equal(t, "4901234567894", records[0].Barcode)
	assert.Equal(t, "紅茶", records[1].Name)
	assert.Empty(t, records[1].Barcode)
	assert.Zero(t, records[1].MinStock)
}

func TestParseCatalogCSV_SkipsBadRows(t *testing.T) {
	csvData := "商品名,価格\n" +
		",100\n" +
		"抹茶ラテ,abc\n" +
		"抹茶ラテ,600\n"

	records, err := ParseCatalogCSV(strings.NewReader(csvData))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "抹茶ラテ", records[0].Name)
	assert.Equal(t, 600.0, records[0].Price)
}

func TestParseCatalogCSV_MissingRequiredHeader(t *testing.T) {
	csvData := "商品名,在庫数\nコーヒー,3\n"

	_, err := ParseCatalogCSV(strings.NewReader(csvData))

	assert.Error(t, err)
}

func TestParseCatalogCSV_SkipsUTF8BOM(t *testing.T) {
	csvData := "\xEF\xBB\xBF商品名,価格\nコーヒー,500\n"

	records, err := ParseCatalogCSV(strings.NewReader(csvData))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "コーヒー", records[0].Name)
}

func TestDecodeCatalogCSV_ShiftJIS(t *testing.T) {
	utf8CSV := "商品名,価格,在庫数\nおにぎり,150,20\n"
	sjisCSV, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(utf8CSV))
	require.NoError(t, err)

	records, err := DecodeCatalogCSV(sjisCSV)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "おにぎり", records[0].Name)
	assert.Equal(t, 150.0, records[0].Price)
	assert.Equal(t, 20, records[0].Stock)
}
