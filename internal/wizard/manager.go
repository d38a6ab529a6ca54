package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wasilah/csr/internal/logger"
	"github.com/wasilah/csr/internal/upload"
)

// DefaultAutosaveDelay 字段停止变化后多久触发草稿保存
const DefaultAutosaveDelay = 2 * time.Second

// ErrSessionNotFound 会话不存在或已关闭回收
var ErrSessionNotFound = errors.New("向导会话不存在")

// DraftSaver 草稿保存协作方
type DraftSaver interface {
	SaveDraft(snapshot DraftSnapshot) error
}

// Manager 向导会话管理器
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	saver   DraftSaver
	uploads *upload.Manager

	// AutosaveDelay 自动保存的防抖间隔，测试时可调小
	AutosaveDelay time.Duration
}

func NewManager(saver DraftSaver, uploads *upload.Manager) *Manager {
	return &Manager{
		sessions:      make(map[string]*Session),
		saver:         saver,
		uploads:       uploads,
		AutosaveDelay: DefaultAutosaveDelay,
	}
}

// Start 开启新的创建向导会话。initialSlug非空时slug不再自动派生。
func (m *Manager) Start(companyID, createdBy, initialSlug string) *Session {
	var batch *upload.Batch
	if m.uploads != nil {
		batch = m.uploads.NewBatch(context.Background())
	}

	s := newSession(companyID, createdBy, initialSlug, m.AutosaveDelay, m.persistDraft, batch)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	logger.Info("wizard session started: %s (company=%s)", s.ID, companyID)
	return s
}

// Get 按ID取会话
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close 关闭并移除会话
func (m *Manager) Close(id string, discard bool) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	if err := s.Close(discard); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func (m *Manager) persistDraft(snapshot DraftSnapshot) {
	if m.saver == nil {
		return
	}
	if err := m.saver.SaveDraft(snapshot); err != nil {
		logger.Error("failed to autosave draft %s: %v", snapshot.SessionID, err)
	}
}
