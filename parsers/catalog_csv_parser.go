// C:\Users\wasab\OneDrive\デスクトップ\REGI\parsers\catalog_csv_parser.go
package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

type ParsedCatalogCSVRecord struct {
	Name     string
	Price    float64
	Stock    int
	MinStock int
	Barcode  string
}

// DecodeCatalogCSV は商品マスタCSVのバイト列を解析します。
// UTF-8 として不正なデータは Shift-JIS とみなしてデコードします。
func DecodeCatalogCSV(data []byte) ([]ParsedCatalogCSVRecord, error) {
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("Shift-JISデコードに失敗: %w", err)
		}
		data = decoded
	}
	return ParseCatalogCSV(bytes.NewReader(data))
}

// ParseCatalogCSV は商品マスタCSVを解析します。
// 必須ヘッダーは「商品名」「価格」。「在庫数」「発注点」「バーコード」は任意です。
func ParseCatalogCSV(r io.Reader) ([]ParsedCatalogCSVRecord, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSVファイルが空です")
	}
	if err != nil {
		return nil, fmt.Errorf("CSVヘッダーの読み取りに失敗: %w", err)
	}

	requiredHeaders := []string{"商品名", "価格"}
	colIndex, err := getColIndex(header, requiredHeaders)
	if err != nil {
		return nil, err
	}

	idxStock, hasStock := colIndex["在庫数"]
	idxMinStock, hasMinStock := colIndex["発注点"]
	idxBarcode, hasBarcode := colIndex["バーコード"]

	var records []ParsedCatalogCSVRecord
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: CSV %d行目の読み取りエラー (スキップ): %v", line, err)
			continue
		}

		get := func(idx int) string {
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		name := get(colIndex["商品名"])
		if name == "" {
			continue
		}

		price, err := strconv.ParseFloat(get(colIndex["価格"]), 64)
		if err != nil {
			log.Printf("WARN: CSV %d行目の価格が不正です (スキップ): %q", line, get(colIndex["価格"]))
			continue
		}

		parsedRec := ParsedCatalogCSVRecord{
			Name:  name,
			Price: price,
		}

		if hasStock {
			parsedRec.Stock, _ = strconv.Atoi(get(idxStock))
		}
		if hasMinStock {
			parsedRec.MinStock, _ = strconv.Atoi(get(idxMinStock))
		}
		if hasBarcode {
			parsedRec.Barcode = get(idxBarcode)
		}

		records = append(records, parsedRec)
	}
	return records, nil
}
