// C:\Users\wasab\OneDrive\デスクトップ\REGI\ledger\ledger.go
package ledger

import (
	"sort"

	"regi/model"
)

// Ledger は確定済み売上の追記専用リストです。先頭が最新 (checkout が
// Prepend する) で、売上の変更や削除は提供しません。
// ロックは持ちません。呼び出し側 (エンジン) が直列化します。
type Ledger struct {
	sales []model.Sale
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Load は起動時に永続化済みの売上リストを取り込みます。
func (l *Ledger) Load(sales []model.Sale) {
	l.sales = make([]model.Sale, len(sales))
	for i, s := range sales {
		l.sales[i] = model.CloneSale(s)
	}
}

// Prepend は売上を先頭 (最新) に追加します。
func (l *Ledger) Prepend(s model.Sale) {
	l.sales = append([]model.Sale{model.CloneSale(s)}, l.sales...)
}

// All は売上リストの独立したコピーを返します (最新が先頭)。
func (l *Ledger) All() []model.Sale {
	out := make([]model.Sale, len(l.sales))
	for i, s := range l.sales {
		out[i] = model.CloneSale(s)
	}
	return out
}

func (l *Ledger) Len() int {
	return len(l.sales)
}

// Find はIDで売上1件を返します (レシート表示用)。
func (l *Ledger) Find(id string) (model.Sale, bool) {
	for _, s := range l.sales {
		if s.ID == id {
			return model.CloneSale(s), true
		}
	}
	return model.Sale{}, false
}

// Filter は日付範囲と支払い方法による絞り込み条件です。
// 日付は YYYYMMDD のローカル日付で、両端を含みます。空欄は無条件です。
type Filter struct {
	Start  string
	End    string
	Method model.PaymentMethod
}

func (f Filter) matches(s model.Sale) bool {
	key := s.DateKey()
	if f.Start != "" && key < f.Start {
		return false
	}
	if f.End != "" && key > f.End {
		return false
	}
	if f.Method != "" && s.PaymentMethod != f.Method {
		return false
	}
	return true
}

// Filtered は条件に一致する売上のコピーを返します (最新が先頭)。
func (l *Ledger) Filtered(f Filter) []model.Sale {
	var out []model.Sale
	for _, s := range l.sales {
		if f.matches(s) {
			out = append(out, model.CloneSale(s))
		}
	}
	return out
}

// DailySummaries は条件に一致する売上をローカル日付で集計します。
// 日ごとの合計金額と件数を、最新の日付を先頭に返します。
func (l *Ledger) DailySummaries(f Filter) []model.DailySummary {
	groups := make(map[string]*model.DailySummary)
	for _, s := range l.sales {
		if !f.matches(s) {
			continue
		}
		key := s.DateKey()
		g, ok := groups[key]
		if !ok {
			g = &model.DailySummary{Date: key}
			groups[key] = g
		}
		g.Total += s.Total
		g.Count++
	}

	out := make([]model.DailySummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}
