// C:\Users\wasab\OneDrive\デスクトップ\REGI\barcode\barcode.go
package barcode

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// Normalize はスキャン・手入力された文字列を商品マスタ照合用の正規化コードに変換します。
//
// 仕様:
//  1. 全角数字は半角に変換します (Excel経由の取込やIME入力対策)。
//  2. 13桁は JAN-13 / EAN-13 としてそのまま扱います。
//  3. 12桁は UPC-A として先頭に0を付け、13桁に揃えます。
//  4. 8桁は JAN-8 / EAN-8 としてそのまま扱います。
//  5. いずれもチェックディジットを検証し、一致しない場合はエラーを返します。
//
// 上記以外の桁数や数字以外を含むコードは規格外としてエラーを返します。
// 店内コード等の規格外コードを許容するかは呼び出し側の判断です。
func Normalize(code string) (string, error) {
	code = strings.TrimSpace(width.Narrow.String(code))
	if code == "" {
		return "", fmt.Errorf("バーコードが空です")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("バーコードに数字以外が含まれています: %q", code)
		}
	}

	switch len(code) {
	case 13, 8:
		// JAN-13 / JAN-8
	case 12:
		// UPC-A は先頭に0を足すとJAN-13と同じ体系になる
		code = "0" + code
	default:
		return "", fmt.Errorf("対応していない桁数です (%d桁): %q", len(code), code)
	}

	if !validCheckDigit(code) {
		return "", fmt.Errorf("チェックディジットが一致しません: %q", code)
	}
	return code, nil
}

// validCheckDigit は末尾1桁をGS1方式 (右端のデータ桁から重み3,1,3,...) で
// 検証します。JAN-13 / JAN-8 / UPC-A 共通のアルゴリズムです。
func validCheckDigit(code string) bool {
	data := code[:len(code)-1]
	sum := 0
	weight := 3
	for i := len(data) - 1; i >= 0; i-- {
		sum += int(data[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	want := (10 - sum%10) % 10
	return int(code[len(code)-1]-'0') == want
}
