package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wasilah/csr/internal/export"
	"github.com/wasilah/csr/internal/logger"
	"github.com/wasilah/csr/internal/model"
	"github.com/wasilah/csr/internal/query"
	"github.com/wasilah/csr/internal/wizard"
	"gorm.io/gorm"
)

// ErrProjectNotFound 项目不存在
var ErrProjectNotFound = errors.New("项目不存在")

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// CreateProject 从向导提交的请求创建项目，初始状态为草稿
func (p *ProjectLogic) CreateProject(req wizard.CreateProjectRequest) (*model.Project, error) {
	project := &model.Project{
		ID:               uuid.NewString(),
		CompanyID:        req.CompanyID,
		CreatedBy:        req.CreatedBy,
		Slug:             req.Slug,
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Type:             req.Type,
		SDGs:             req.SDGs,
		Location:         req.Location,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		VolunteerTarget:  req.VolunteerTarget,
		DeliveryMode:     req.DeliveryMode,
		Budget:           req.Budget,
		BudgetBreakdown:  req.BudgetBreakdown,
		Approvers:        req.Approvers,
		MediaIDs:         req.MediaIDs,
		DocumentIDs:      req.DocumentIDs,
		Status:           model.ProjectStatusDraft,
	}
	if project.Type == "" {
		project.Type = model.ProjectTypeOther
	}

	// slug在公司范围内唯一
	var count int64
	if err := p.db.Model(&model.Project{}).
		Where("company_id = ? AND slug = ?", project.CompanyID, project.Slug).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("校验slug失败: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("slug已被占用: %s", project.Slug)
	}

	if err := p.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("创建项目失败: %w", err)
	}

	logger.Info("project created: %s (%s)", project.ID, project.Title)
	return project, nil
}

// ListProjects 获取项目列表：按公司取出后走筛选和分页引擎
func (p *ProjectLogic) ListProjects(companyID string, spec query.Spec, page, pageSize int) (query.Page, error) {
	projects, err := p.fetchCompany(companyID)
	if err != nil {
		return query.Page{}, err
	}

	filtered := query.Filter(projects, spec)
	return query.Paginate(filtered, page, pageSize), nil
}

// ExportProjects 导出筛选后的项目列表CSV（不分页）
func (p *ProjectLogic) ExportProjects(companyID string, spec query.Spec) ([]byte, string, error) {
	projects, err := p.fetchCompany(companyID)
	if err != nil {
		return nil, "", err
	}

	data, err := export.ProjectsCSV(query.Filter(projects, spec))
	if err != nil {
		return nil, "", err
	}
	return data, export.FileName("projects", time.Now()), nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(id string) (*model.Project, error) {
	var project model.Project
	if err := p.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}
	return &project, nil
}

// UpdateProject 部分更新项目字段
func (p *ProjectLogic) UpdateProject(id string, updates map[string]interface{}) error {
	// 只允许更新特定字段
	allowedFields := []string{
		"title", "short_description", "type", "sdgs",
		"location_country", "location_city", "location_address",
		"start_date", "end_date", "volunteer_target", "delivery_mode",
		"budget", "budget_breakdown", "approvers",
	}
	for key := range updates {
		if !contains(allowedFields, key) {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return errors.New("没有要更新的字段")
	}

	result := p.db.Model(&model.Project{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("更新项目失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// ApproveProject 审核通过，项目转为进行中
func (p *ProjectLogic) ApproveProject(id string) error {
	return p.transition(id, []model.ProjectStatus{
		model.ProjectStatusDraft,
		model.ProjectStatusPending,
	}, model.ProjectStatusActive)
}

// RejectProject 审核拒绝，项目直接归档
func (p *ProjectLogic) RejectProject(id string) error {
	project, err := p.GetProject(id)
	if err != nil {
		return err
	}
	return p.archive(project)
}

// SubmitForReview 草稿提交审核
func (p *ProjectLogic) SubmitForReview(id string) error {
	return p.transition(id, []model.ProjectStatus{
		model.ProjectStatusDraft,
	}, model.ProjectStatusPending)
}

// ArchiveProject 归档，任意状态均可进入
func (p *ProjectLogic) ArchiveProject(id string) error {
	project, err := p.GetProject(id)
	if err != nil {
		return err
	}
	if project.Status == model.ProjectStatusArchived {
		return errors.New("项目已归档")
	}
	return p.archive(project)
}

// BulkArchive 批量归档勾选的项目，已归档的跳过
func (p *ProjectLogic) BulkArchive(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.New("未选择任何项目")
	}

	var projects []model.Project
	if err := p.db.Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return 0, fmt.Errorf("获取项目失败: %w", err)
	}

	var archived int64
	for i := range projects {
		if projects[i].Status == model.ProjectStatusArchived {
			continue
		}
		if err := p.archive(&projects[i]); err != nil {
			return archived, err
		}
		archived++
	}
	return archived, nil
}

// UnarchiveProject 取消归档，恢复归档前的状态
func (p *ProjectLogic) UnarchiveProject(id string) error {
	project, err := p.GetProject(id)
	if err != nil {
		return err
	}
	if project.Status != model.ProjectStatusArchived {
		return errors.New("项目未归档")
	}

	restored := project.PrevStatus
	if restored == "" {
		restored = model.ProjectStatusDraft
	}
	updates := map[string]interface{}{
		"status":      restored,
		"prev_status": "",
	}
	if err := p.db.Model(project).Updates(updates).Error; err != nil {
		return fmt.Errorf("取消归档失败: %w", err)
	}
	return nil
}

// DuplicateProject 复制项目：新ID、草稿状态、标题加后缀
func (p *ProjectLogic) DuplicateProject(id string) (*model.Project, error) {
	src, err := p.GetProject(id)
	if err != nil {
		return nil, err
	}

	slug, err := p.uniqueSlug(src.CompanyID, src.Slug+"-copy")
	if err != nil {
		return nil, err
	}

	copied := *src
	copied.ID = uuid.NewString()
	copied.Title = src.Title + " (Copy)"
	copied.Slug = slug
	copied.Status = model.ProjectStatusDraft
	copied.PrevStatus = ""
	copied.CreatedAt = time.Time{}
	copied.UpdatedAt = time.Time{}

	if err := p.db.Create(&copied).Error; err != nil {
		return nil, fmt.Errorf("复制项目失败: %w", err)
	}

	logger.Info("project duplicated: %s -> %s", src.ID, copied.ID)
	return &copied, nil
}

// fetchCompany 取公司全部项目，按创建时间升序保持插入顺序
func (p *ProjectLogic) fetchCompany(companyID string) ([]model.Project, error) {
	var projects []model.Project
	if err := p.db.Where("company_id = ?", companyID).
		Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("获取项目列表失败: %w", err)
	}
	return projects, nil
}

// archive 记录归档前状态后归档
func (p *ProjectLogic) archive(project *model.Project) error {
	updates := map[string]interface{}{
		"status":      model.ProjectStatusArchived,
		"prev_status": project.Status,
	}
	if err := p.db.Model(project).Updates(updates).Error; err != nil {
		return fmt.Errorf("归档项目失败: %w", err)
	}
	return nil
}

// transition 校验当前状态后执行状态转移
func (p *ProjectLogic) transition(id string, from []model.ProjectStatus, to model.ProjectStatus) error {
	project, err := p.GetProject(id)
	if err != nil {
		return err
	}

	allowed := false
	for _, s := range from {
		if project.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("项目当前状态为%s，无法转为%s", project.Status, to)
	}

	if err := p.db.Model(project).Update("status", to).Error; err != nil {
		return fmt.Errorf("更新项目状态失败: %w", err)
	}
	return nil
}

// uniqueSlug 在公司范围内找一个未占用的slug
func (p *ProjectLogic) uniqueSlug(companyID, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := p.db.Model(&model.Project{}).
			Where("company_id = ? AND slug = ?", companyID, slug).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("校验slug失败: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
