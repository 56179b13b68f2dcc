// C:\Users\wasab\OneDrive\デスクトップ\REGI\scanner\scanner.go
package scanner

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State はスキャンセッションの状態です。SCANNING 以外は終端状態で、
// 終端に入ったセッションは以後変化しません。
type State string

const (
	StateScanning State = "SCANNING"
	StateDetected State = "DETECTED"
	StateFailed   State = "FAILED"
	StateClosed   State = "CLOSED"
)

// カメラ側が報告する代表的な失敗理由です。
const (
	ReasonPermissionDenied  = "permission denied"
	ReasonUnsupportedDevice = "unsupported device"
)

type session struct {
	id        string
	state     State
	code      string
	reason    string
	startedAt time.Time
}

// View はセッションの参照用スナップショットです。
type View struct {
	SessionID string `json:"sessionId"`
	State     State  `json:"state"`
	Code      string `json:"code,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func (s *session) view() View {
	return View{SessionID: s.id, State: s.state, Code: s.code, Reason: s.reason}
}

// Manager はバーコードスキャンのセッション管理です。カメラは同時に
// 1つしか使えないため、SCANNING 状態のセッションは常に最大1件です。
// 新しい Start は前のセッションを閉じてから始めます。
type Manager struct {
	mu     sync.Mutex
	active *session
	last   *session
}

func NewManager() *Manager {
	return &Manager{}
}

// Start は新しいスキャンセッションを開始します。進行中のセッションが
// あれば閉じて置き換えます。
func (m *Manager) Start() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		log.Printf("WARN: superseding active scan session %s", m.active.id)
		m.closeLocked(m.active, StateClosed, "")
	}

	s := &session{
		id:        uuid.NewString(),
		state:     StateScanning,
		startedAt: time.Now(),
	}
	m.active = s
	m.last = s
	log.Printf("INFO: scan session %s started", s.id)
	return s.view()
}

// Report はカメラが読み取ったコードを記録してセッションを終端にします。
// 既に終わったセッションや未知のIDは何もせず false を返します。
func (m *Manager) Report(sessionID, code string) (View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.findLocked(sessionID)
	if s == nil {
		return View{}, false
	}
	if s.state != StateScanning {
		return s.view(), false
	}

	s.code = code
	m.closeLocked(s, StateDetected, "")
	log.Printf("INFO: scan session %s detected code %s", s.id, code)
	return s.view(), true
}

// Fail はカメラ起動の失敗理由を記録してセッションを終端にします。
func (m *Manager) Fail(sessionID, reason string) (View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.findLocked(sessionID)
	if s == nil {
		return View{}, false
	}
	if s.state != StateScanning {
		return s.view(), false
	}

	m.closeLocked(s, StateFailed, reason)
	log.Printf("WARN: scan session %s failed: %s", s.id, reason)
	return s.view(), true
}

// Status はセッションの現在状態を返します。
func (m *Manager) Status(sessionID string) (View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.findLocked(sessionID)
	if s == nil {
		return View{}, false
	}
	return s.view(), true
}

// Stop はセッションを閉じます。何度呼んでも安全で、既に終端の
// セッションには触れません (読み取り結果は消さない)。
func (m *Manager) Stop(sessionID string) View {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.findLocked(sessionID)
	if s == nil {
		return View{SessionID: sessionID, State: StateClosed}
	}
	if s.state == StateScanning {
		m.closeLocked(s, StateClosed, "")
		log.Printf("INFO: scan session %s closed after %s", s.id, time.Since(s.startedAt).Round(time.Millisecond))
	}
	return s.view()
}

// closeLocked は終端状態への遷移と active スロットの解放を行います。
func (m *Manager) closeLocked(s *session, state State, reason string) {
	s.state = state
	s.reason = reason
	if m.active == s {
		m.active = nil
	}
}

func (m *Manager) findLocked(sessionID string) *session {
	if m.active != nil && m.active.id == sessionID {
		return m.active
	}
	if m.last != nil && m.last.id == sessionID {
		return m.last
	}
	return nil
}
