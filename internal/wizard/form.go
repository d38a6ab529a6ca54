package wizard

import (
	"time"

	"github.com/wasilah/csr/internal/model"
)

// Step 向导步骤，只允许逐步前进/后退
type Step int

const (
	StepBasicInfo Step = iota + 1 // 基本信息
	StepLogistics                 // 执行安排
	StepBudget                    // 预算与审批
	StepMedia                     // 媒体上传
	StepReview                    // 确认创建
)

// FormState 向导收集的表单状态，各字段允许部分填写
type FormState struct {
	Title            string             `json:"title"`
	ShortDescription string             `json:"short_description"`
	Type             model.ProjectType  `json:"type"`
	SDGs             []int              `json:"sdgs"`
	Slug             string             `json:"slug"`
	Country          string             `json:"country"`
	City             string             `json:"city"`
	Address          string             `json:"address"`
	StartDate        *time.Time         `json:"start_date"`
	EndDate          *time.Time         `json:"end_date"`
	VolunteerTarget  int                `json:"volunteer_target"`
	DeliveryMode     model.DeliveryMode `json:"delivery_mode"`
	Budget           float64            `json:"budget"`
	BudgetBreakdown  []model.BudgetLine `json:"budget_breakdown"`
	Approvers        []model.Approver   `json:"approvers"`
}

// FieldChanges 一次编辑提交的字段变更，nil表示未修改
type FieldChanges struct {
	Title            *string             `json:"title,omitempty"`
	ShortDescription *string             `json:"short_description,omitempty"`
	Type             *model.ProjectType  `json:"type,omitempty"`
	SDGs             *[]int              `json:"sdgs,omitempty"`
	Slug             *string             `json:"slug,omitempty"`
	Country          *string             `json:"country,omitempty"`
	City             *string             `json:"city,omitempty"`
	Address          *string             `json:"address,omitempty"`
	StartDate        *time.Time          `json:"start_date,omitempty"`
	EndDate          *time.Time          `json:"end_date,omitempty"`
	VolunteerTarget  *int                `json:"volunteer_target,omitempty"`
	DeliveryMode     *model.DeliveryMode `json:"delivery_mode,omitempty"`
	Budget           *float64            `json:"budget,omitempty"`
	BudgetBreakdown  *[]model.BudgetLine `json:"budget_breakdown,omitempty"`
	Approvers        *[]model.Approver   `json:"approvers,omitempty"`
}
