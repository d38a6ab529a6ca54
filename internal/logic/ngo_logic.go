package logic

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wasilah/csr/internal/model"
	"github.com/wasilah/csr/internal/query"
	"gorm.io/gorm"
)

// NGOLogic 候选NGO业务逻辑
type NGOLogic struct {
	db *gorm.DB
}

// NewNGOLogic 创建候选NGO业务逻辑
func NewNGOLogic(db *gorm.DB) *NGOLogic {
	return &NGOLogic{db: db}
}

// NGOListOptions 列表筛选与排序
type NGOListOptions struct {
	MinScore float64 `form:"min_score"`
	// SortBy score / proximity / recency，proximity需给定参照城市
	SortBy   string `form:"sort_by"`
	NearCity string `form:"near_city"`
}

// ListCandidates 项目下的候选NGO
func (n *NGOLogic) ListCandidates(projectID string, opts NGOListOptions) ([]model.NGOCandidate, error) {
	var candidates []model.NGOCandidate
	db := n.db.Where("project_id = ?", projectID)
	if opts.MinScore > 0 {
		db = db.Where("score >= ?", opts.MinScore)
	}
	if err := db.Order("created_at ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("获取候选NGO列表失败: %w", err)
	}

	switch opts.SortBy {
	case "score":
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Score > candidates[j].Score
		})
	case "recency":
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
		})
	case "proximity":
		origin, ok := model.LookupCity(opts.NearCity)
		if ok {
			sort.SliceStable(candidates, func(i, j int) bool {
				return n.distanceTo(origin, candidates[i].City) < n.distanceTo(origin, candidates[j].City)
			})
		}
	}
	return candidates, nil
}

// distanceTo 坐标表中查不到的城市排到最后
func (n *NGOLogic) distanceTo(origin model.Coordinate, city string) float64 {
	target, ok := model.LookupCity(city)
	if !ok {
		return 1 << 20
	}
	return query.HaversineKm(origin, target)
}

// ApproveCandidate 审核通过候选NGO
func (n *NGOLogic) ApproveCandidate(id string) error {
	return n.review(id, model.NGOStatusApproved)
}

// RejectCandidate 拒绝候选NGO
func (n *NGOLogic) RejectCandidate(id string) error {
	return n.review(id, model.NGOStatusRejected)
}

func (n *NGOLogic) review(id string, to model.NGOStatus) error {
	candidate, err := n.get(id)
	if err != nil {
		return err
	}
	if candidate.Status != model.NGOStatusPending {
		return fmt.Errorf("候选NGO当前状态为%s，不能再次审核", candidate.Status)
	}
	if err := n.db.Model(candidate).Update("status", to).Error; err != nil {
		return fmt.Errorf("更新候选NGO状态失败: %w", err)
	}
	return nil
}

// AttachRequest 挂接到项目时采集的信息
type AttachRequest struct {
	Role             model.NGORole `json:"role" binding:"required"`
	Responsibilities string        `json:"responsibilities"`
	BudgetAllocation float64       `json:"budget_allocation"`
}

// AttachCandidate 将已批准的NGO挂接到项目，补充角色与预算分配
func (n *NGOLogic) AttachCandidate(id string, req AttachRequest) error {
	candidate, err := n.get(id)
	if err != nil {
		return err
	}
	if candidate.Status != model.NGOStatusApproved {
		return errors.New("仅已批准的NGO可以挂接到项目")
	}
	if req.Role != model.NGORoleLead && req.Role != model.NGORolePartner {
		return fmt.Errorf("无效的角色: %s", req.Role)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"role":              req.Role,
		"responsibilities":  req.Responsibilities,
		"budget_allocation": req.BudgetAllocation,
		"attached_at":       &now,
	}
	if err := n.db.Model(candidate).Updates(updates).Error; err != nil {
		return fmt.Errorf("挂接NGO失败: %w", err)
	}
	return nil
}

// AddCandidate 添加候选NGO
func (n *NGOLogic) AddCandidate(candidate *model.NGOCandidate) error {
	if candidate.Name == "" {
		return errors.New("NGO名称不能为空")
	}
	candidate.ID = uuid.NewString()
	candidate.Status = model.NGOStatusPending
	if err := n.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("添加候选NGO失败: %w", err)
	}
	return nil
}

func (n *NGOLogic) get(id string) (*model.NGOCandidate, error) {
	var candidate model.NGOCandidate
	if err := n.db.First(&candidate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("候选NGO不存在")
		}
		return nil, fmt.Errorf("获取候选NGO失败: %w", err)
	}
	return &candidate, nil
}
