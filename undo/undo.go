// C:\Users\wasab\OneDrive\デスクトップ\REGI\undo\undo.go
package undo

import (
	"time"

	"regi/model"
)

// DefaultTTL はスナップショットが復元可能でいられる既定の時間です。
const DefaultTTL = 5 * time.Second

// State はアンドゥスロットの状態です。
type State int

const (
	StateEmpty State = iota
	StateArmed
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateArmed:
		return "Armed"
	case StateExpired:
		return "Expired"
	}
	return "Unknown"
}

// Snapshot はカートと商品マスタの対になったディープコピーです。
type Snapshot struct {
	Cart     []model.CartItem
	Products []model.Product
	Message  string
}

// Manager は1スロットのアンドゥバッファです。新しい Capture は前の
// スナップショットを積み重ねず上書きします。期限切れはタイマーではなく
// 参照時に now と deadline の比較で判定します。
// Manager 自体はロックを持ちません。呼び出し側 (エンジン) が直列化します。
type Manager struct {
	slot     *Snapshot
	deadline time.Time
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{ttl: ttl, now: time.Now}
}

// NewManagerWithClock はテスト用に時計を注入します。
func NewManagerWithClock(ttl time.Duration, now func() time.Time) *Manager {
	m := NewManager(ttl)
	m.now = now
	return m
}

// Capture はスロットを上書きして期限を設定します。
// 渡された状態はディープコピーして保持します。
func (m *Manager) Capture(cart []model.CartItem, products []model.Product, message string) {
	m.slot = &Snapshot{
		Cart:     model.CloneCart(cart),
		Products: model.CloneProducts(products),
		Message:  message,
	}
	m.deadline = m.now().Add(m.ttl)
}

// State は現在のスロット状態を返します。
func (m *Manager) State() State {
	if m.slot == nil {
		return StateEmpty
	}
	if m.now().After(m.deadline) {
		return StateExpired
	}
	return StateArmed
}

// Restore は Armed のときだけスナップショットを取り出してスロットを空にします。
// 期限切れ・空のときは nil, false を返し、状態には触れません。
func (m *Manager) Restore() (*Snapshot, bool) {
	if m.State() != StateArmed {
		return nil, false
	}
	snap := m.slot
	m.slot = nil
	return snap, true
}

// Discard はスロットを無条件に空にします (会計確定時に呼ばれます)。
func (m *Manager) Discard() {
	m.slot = nil
}

// Pending は Armed のスナップショットの説明文と残り時間を返します。
func (m *Manager) Pending() (message string, remaining time.Duration, ok bool) {
	if m.State() != StateArmed {
		return "", 0, false
	}
	return m.slot.Message, m.deadline.Sub(m.now()), true
}
