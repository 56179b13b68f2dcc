// C:\Users\wasab\OneDrive\デスクトップ\REGI\ledger\ledger_test.go
package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regi/model"
)

func saleOn(id string, day time.Time, total float64, method model.PaymentMethod) model.Sale {
	return model.Sale{
		ID:            id,
		Items:         []model.CartItem{{Product: model.Product{ID: "p1", Name: "コーヒー", Price: total}, Quantity: 1}},
		Total:         total,
		PaymentMethod: method,
		Timestamp:     day,
	}
}

func TestLedger_PrependKeepsNewestFirst(t *testing.T) {
	l := NewLedger()
	day := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)

	l.Prepend(saleOn("s1", day, 100, model.PaymentCash))
	l.Prepend(saleOn("s2", day.Add(time.Hour), 200, model.PaymentCash))

	all := l.All()
	require.Len(t, all, 2)
	assert.Equal(t, "s2", all[0].ID)
	assert.Equal(t, "s1", all[1].ID)
}

func TestLedger_Find(t *testing.T) {
	l := NewLedger()
	day := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
	l.Prepend(saleOn("s1", day, 100, model.PaymentCash))

	s, ok := l.Find("s1")
	require.True(t, ok)
	assert.Equal(t, 100.0, s.Total)

	_, ok = l.Find("missing")
	assert.False(t, ok)
}

func TestLedger_AllReturnsCopies(t *testing.T) {
	l := NewLedger()
	day := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
	l.Prepend(saleOn("s1", day, 100, model.PaymentCash))

	all := l.All()
	all[0].Items[0].Quantity = 99

	again, ok := l.Find("s1")
	require.True(t, ok)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestLedger_DailySummaries(t *testing.T) {
	l := NewLedger()
	dayD := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
	dayBefore := dayD.AddDate(0, 0, -1)

	// 古い順に確定した売上: D-1 に 30、D に 100 と 50
	l.Prepend(saleOn("s1", dayBefore, 30, model.PaymentCash))
	l.Prepend(saleOn("s2", dayD, 100, model.PaymentCash))
	l.Prepend(saleOn("s3", dayD.Add(2*time.Hour), 50, model.PaymentBankTransfer))

	summaries := l.DailySummaries(Filter{})

	require.Len(t, summaries, 2)
	assert.Equal(t, "20260824", summaries[0].Date)
	assert.Equal(t, 150.0, summaries[0].Total)
	assert.Equal(t, 2, summaries[0].Count)
	assert.Equal(t, "20260823", summaries[1].Date)
	assert.Equal(t, 30.0, summaries[1].Total)
	assert.Equal(t, 1, summaries[1].Count)
}

func TestLedger_FilteredByDateRangeInclusive(t *testing.T) {
	l := NewLedger()
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		l.Prepend(saleOn(string(rune('a'+i)), base.AddDate(0, 0, i), 100, model.PaymentCash))
	}

	got := l.Filtered(Filter{Start: "20260821", End: "20260823"})

	require.Len(t, got, 3)
	// 両端の日付を含む
	assert.Equal(t, "20260823", got[0].DateKey())
	assert.Equal(t, "20260821", got[2].DateKey())
}

func TestLedger_FilteredByPaymentMethod(t *testing.T) {
	l := NewLedger()
	day := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
	l.Prepend(saleOn("s1", day, 100, model.PaymentCash))
	l.Prepend(saleOn("s2", day, 200, model.PaymentMobileMoney))
	l.Prepend(saleOn("s3", day, 300, model.PaymentCash))

	got := l.Filtered(Filter{Method: model.PaymentCash})

	require.Len(t, got, 2)
	for _, s := range got {
		assert.Equal(t, model.PaymentCash, s.PaymentMethod)
	}
}

func TestLedger_DailySummariesWithMethodFilter(t *testing.T) {
	l := NewLedger()
	day := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
	l.Prepend(saleOn("s1", day, 100, model.PaymentCash))
	l.Prepend(saleOn("s2", day, 200, model.PaymentMobileMoney))

	summaries := l.DailySummaries(Filter{Method: model.PaymentMobileMoney})

	require.Len(t, summaries, 1)
	assert.Equal(t, 200.0, summaries[0].Total)
	assert.Equal(t, 1, summaries[0].Count)
}
