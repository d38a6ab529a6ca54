package upload

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wasilah/csr/internal/config"
	"github.com/wasilah/csr/internal/logger"
)

// Status 单个文件的上传状态
type Status string

const (
	StatusUploading Status = "uploading" // 上传中
	StatusSuccess   Status = "success"   // 成功
	StatusError     Status = "error"     // 失败
)

// File 批次内的单个上传文件
type File struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Status    Status `json:"status"`
	Progress  int    `json:"progress"` // 0-100
	Error     string `json:"error,omitempty"`
}

// IsDocument 按扩展名区分文档类与媒体类引用
func (f *File) IsDocument() bool {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".") {
	case "pdf", "docx", "doc", "xlsx":
		return true
	}
	return false
}

// Manager 上传管理器，持有校验配置
type Manager struct {
	cfg config.UploadConfig
}

func NewManager(cfg config.UploadConfig) *Manager {
	return &Manager{cfg: cfg}
}

// NewBatch 创建一个上传批次，批次内所有模拟任务随ctx取消
func (m *Manager) NewBatch(ctx context.Context) *Batch {
	ctx, cancel := context.WithCancel(ctx)
	return &Batch{
		cfg:    m.cfg,
		ctx:    ctx,
		cancel: cancel,
		files:  make(map[string]*File),
		tick:   200 * time.Millisecond,
	}
}

// Batch 一次向导会话内的上传批次
type Batch struct {
	mu     sync.Mutex
	cfg    config.UploadConfig
	ctx    context.Context
	cancel context.CancelFunc
	files  map[string]*File
	order  []string
	// tick 模拟进度推进的间隔，测试时可调小
	tick time.Duration
}

// Add 添加一个文件。校验失败时文件以error状态留在列表中（可重试），
// 不影响同批次其他文件。
func (b *Batch) Add(name string, sizeBytes int64) (*File, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f := &File{
		ID:        uuid.NewString(),
		Name:      name,
		SizeBytes: sizeBytes,
		Status:    StatusUploading,
	}
	b.files[f.ID] = f
	b.order = append(b.order, f.ID)

	if err := b.validate(name, sizeBytes); err != nil {
		f.Status = StatusError
		f.Error = err.Error()
		return f, err
	}

	go b.run(f.ID)
	return f, nil
}

// Retry 对校验或传输失败的文件重新发起上传
func (b *Batch) Retry(id string) (*File, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, ok := b.files[id]
	if !ok {
		return nil, errors.New("文件不存在")
	}
	if f.Status != StatusError {
		return nil, errors.New("仅失败的文件可以重试")
	}

	if err := b.validate(f.Name, f.SizeBytes); err != nil {
		f.Error = err.Error()
		return f, err
	}

	f.Status = StatusUploading
	f.Progress = 0
	f.Error = ""
	go b.run(f.ID)
	return f, nil
}

// Files 按添加顺序返回当前批次的文件快照
func (b *Batch) Files() []File {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]File, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.files[id])
	}
	return out
}

// SuccessIDs 返回上传成功的文件引用，按媒体/文档分组
func (b *Batch) SuccessIDs() (mediaIDs, documentIDs []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, id := range b.order {
		f := b.files[id]
		if f.Status != StatusSuccess {
			continue
		}
		if f.IsDocument() {
			documentIDs = append(documentIDs, f.ID)
		} else {
			mediaIDs = append(mediaIDs, f.ID)
		}
	}
	return mediaIDs, documentIDs
}

// Cancel 取消单个上传中的文件，进度协程在下一个tick退出
func (b *Batch) Cancel(id string) (*File, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, ok := b.files[id]
	if !ok {
		return nil, errors.New("文件不存在")
	}
	if f.Status != StatusUploading {
		return nil, errors.New("仅上传中的文件可以取消")
	}

	f.Status = StatusError
	f.Error = "上传已取消"
	return f, nil
}

// Close 取消批次内所有未完成的模拟上传
func (b *Batch) Close() {
	b.cancel()
}

// run 用随机步长的定时器模拟上传进度
func (b *Batch) run(id string) {
	b.mu.Lock()
	tick := b.tick
	b.mu.Unlock()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			b.mu.Lock()
			f := b.files[id]
			if f.Status == StatusUploading {
				f.Status = StatusError
				f.Error = "上传已取消"
			}
			b.mu.Unlock()
			return
		case <-ticker.C:
			b.mu.Lock()
			f := b.files[id]
			if f.Status != StatusUploading {
				b.mu.Unlock()
				return
			}
			f.Progress += 10 + rand.Intn(25)
			if f.Progress >= 100 {
				f.Progress = 100
				f.Status = StatusSuccess
				logger.Debug("upload finished: %s", f.Name)
				b.mu.Unlock()
				return
			}
			b.mu.Unlock()
		}
	}
}

// validate 扩展名与大小校验
func (b *Batch) validate(name string, sizeBytes int64) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	allowed := false
	for _, t := range b.cfg.AllowedTypes {
		if ext == strings.ToLower(t) {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("不支持的文件类型: %s", ext)
	}

	maxBytes := int64(b.cfg.MaxSizeMB) * 1024 * 1024
	if maxBytes > 0 && sizeBytes > maxBytes {
		return fmt.Errorf("文件超过大小上限 %dMB", b.cfg.MaxSizeMB)
	}
	return nil
}

// SetTick 调整进度推进间隔，测试用
func (b *Batch) SetTick(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tick = d
}
