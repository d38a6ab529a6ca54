package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wasilah/csr/internal/logger"
	"github.com/wasilah/csr/internal/model"
	"github.com/wasilah/csr/internal/upload"
)

var (
	// ErrUnsavedChanges 存在未保存修改时关闭会话需要显式确认
	ErrUnsavedChanges = errors.New("存在未保存的修改，关闭需要确认")
	// ErrSessionClosed 会话已关闭
	ErrSessionClosed = errors.New("向导会话已关闭")
	// ErrNotAtReview 只能在最后一步提交
	ErrNotAtReview = errors.New("请先完成前面的步骤再提交")
)

// DraftSnapshot 自动保存时交给协作方的草稿快照
type DraftSnapshot struct {
	SessionID string    `json:"session_id"`
	CompanyID string    `json:"company_id"`
	CreatedBy string    `json:"created_by"`
	Step      Step      `json:"step"`
	Form      FormState `json:"form"`
	SavedAt   time.Time `json:"saved_at"`
}

// Session 一次项目创建向导会话。
// 五个步骤线性推进，"下一步"受步骤校验把关，"上一步"始终放行。
type Session struct {
	ID        string
	CompanyID string
	CreatedBy string

	mu   sync.Mutex
	step Step
	form FormState
	// explicitSlug 调用方提供了初始slug时，整个会话不再从标题派生
	explicitSlug bool
	dirty        bool
	lastSavedAt  time.Time
	closed       bool

	autosaveDelay time.Duration
	autosaveTimer *time.Timer
	saveDraft     func(DraftSnapshot)

	uploads *upload.Batch
}

// Step 当前所在步骤
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Form 表单状态快照
func (s *Session) Form() FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// LastSavedAt 最近一次自动保存时间，零值表示尚未保存过
func (s *Session) LastSavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSavedAt
}

// Uploads 会话绑定的上传批次
func (s *Session) Uploads() *upload.Batch {
	return s.uploads
}

// Apply 应用一次字段变更并重置自动保存计时器
func (s *Session) Apply(changes FieldChanges) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	if changes.Title != nil {
		s.form.Title = *changes.Title
		if !s.explicitSlug {
			s.form.Slug = Slugify(s.form.Title)
		}
	}
	if changes.Slug != nil {
		s.form.Slug = *changes.Slug
		// 一旦显式指定slug，本会话内不再自动派生
		s.explicitSlug = true
	}
	if changes.ShortDescription != nil {
		s.form.ShortDescription = *changes.ShortDescription
	}
	if changes.Type != nil {
		s.form.Type = *changes.Type
	}
	if changes.SDGs != nil {
		s.form.SDGs = *changes.SDGs
	}
	if changes.Country != nil {
		s.form.Country = *changes.Country
	}
	if changes.City != nil {
		s.form.City = *changes.City
	}
	if changes.Address != nil {
		s.form.Address = *changes.Address
	}
	if changes.StartDate != nil {
		s.form.StartDate = changes.StartDate
	}
	if changes.EndDate != nil {
		s.form.EndDate = changes.EndDate
	}
	if changes.VolunteerTarget != nil {
		s.form.VolunteerTarget = *changes.VolunteerTarget
	}
	if changes.DeliveryMode != nil {
		s.form.DeliveryMode = *changes.DeliveryMode
	}
	if changes.Budget != nil {
		s.form.Budget = *changes.Budget
	}
	if changes.BudgetBreakdown != nil {
		s.form.BudgetBreakdown = *changes.BudgetBreakdown
	}
	if changes.Approvers != nil {
		s.form.Approvers = *changes.Approvers
	}

	s.dirty = true
	s.resetAutosaveLocked()
	return nil
}

// resetAutosaveLocked 先停掉上一个计时器再起新的，保证编辑过程中只有一个待触发的保存
func (s *Session) resetAutosaveLocked() {
	if s.saveDraft == nil {
		return
	}
	if s.autosaveTimer != nil {
		s.autosaveTimer.Stop()
	}
	s.autosaveTimer = time.AfterFunc(s.autosaveDelay, s.fireAutosave)
}

func (s *Session) fireAutosave() {
	s.mu.Lock()
	if s.closed || !s.dirty {
		s.mu.Unlock()
		return
	}
	snapshot := DraftSnapshot{
		SessionID: s.ID,
		CompanyID: s.CompanyID,
		CreatedBy: s.CreatedBy,
		Step:      s.step,
		Form:      s.form,
		SavedAt:   time.Now(),
	}
	s.dirty = false
	s.lastSavedAt = snapshot.SavedAt
	saveDraft := s.saveDraft
	s.mu.Unlock()

	// 回调在锁外执行，保存耗时不阻塞用户编辑
	saveDraft(snapshot)
}

// Next 校验当前步骤后前进一步
func (s *Session) Next() (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.step, ErrSessionClosed
	}
	if err := ValidateStep(s.step, &s.form); err != nil {
		return s.step, err
	}
	if s.step < StepReview {
		s.step++
	}
	return s.step, nil
}

// Back 后退一步，不做任何校验
func (s *Session) Back() Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step > StepBasicInfo {
		s.step--
	}
	return s.step
}

// Close 关闭会话。存在未保存修改且未确认丢弃时拒绝，
// 关闭会停止自动保存计时器并取消批次内未完成的上传。
func (s *Session) Close(discard bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if s.dirty && !discard {
		s.mu.Unlock()
		return ErrUnsavedChanges
	}
	s.closed = true
	if s.autosaveTimer != nil {
		s.autosaveTimer.Stop()
	}
	s.mu.Unlock()

	if s.uploads != nil {
		s.uploads.Close()
	}
	logger.Debug("wizard session closed: %s", s.ID)
	return nil
}

// Submit 在最后一步提交：重新校验第1-3步后组装创建请求
func (s *Session) Submit() (CreateProjectRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return CreateProjectRequest{}, ErrSessionClosed
	}
	if s.step != StepReview {
		return CreateProjectRequest{}, ErrNotAtReview
	}

	for _, step := range []Step{StepBasicInfo, StepLogistics, StepBudget} {
		if err := ValidateStep(step, &s.form); err != nil {
			return CreateProjectRequest{}, err
		}
	}

	if s.form.Slug == "" {
		s.form.Slug = Slugify(s.form.Title)
	}

	var mediaIDs, documentIDs []string
	if s.uploads != nil {
		mediaIDs, documentIDs = s.uploads.SuccessIDs()
	}

	return buildRequest(s.CompanyID, s.CreatedBy, &s.form, mediaIDs, documentIDs), nil
}

func newSession(companyID, createdBy, initialSlug string, delay time.Duration, saveDraft func(DraftSnapshot), uploads *upload.Batch) *Session {
	s := &Session{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		CreatedBy:     createdBy,
		step:          StepBasicInfo,
		autosaveDelay: delay,
		saveDraft:     saveDraft,
		uploads:       uploads,
		form: FormState{
			Type:         model.ProjectTypeOther,
			DeliveryMode: model.DeliveryModeOnGround,
		},
	}
	if initialSlug != "" {
		s.form.Slug = initialSlug
		s.explicitSlug = true
	}
	return s
}
