package wizard

import (
	"time"

	"github.com/wasilah/csr/internal/model"
)

// CreateProjectRequest 向导最终组装出的创建请求，交给外部协作方持久化
type CreateProjectRequest struct {
	CompanyID string `json:"company_id"`
	CreatedBy string `json:"created_by"`

	Title            string            `json:"title"`
	ShortDescription string            `json:"short_description"`
	Type             model.ProjectType `json:"type"`
	SDGs             []int             `json:"sdgs"`
	Slug             string            `json:"slug"`

	Location        model.Location     `json:"location"`
	StartDate       time.Time          `json:"start_date"`
	EndDate         time.Time          `json:"end_date"`
	VolunteerTarget int                `json:"volunteer_target"`
	DeliveryMode    model.DeliveryMode `json:"delivery_mode"`

	Budget          float64            `json:"budget"`
	BudgetBreakdown []model.BudgetLine `json:"budget_breakdown"`
	Approvers       []model.Approver   `json:"approvers"`

	MediaIDs    []string `json:"media_ids"`
	DocumentIDs []string `json:"document_ids"`
}

// buildRequest 从表单状态组装创建请求：
// 明细行只保留类别非空且金额为正的，审批人只保留姓名邮箱齐全的，
// 媒体引用只收上传成功的文件。
func buildRequest(companyID, createdBy string, form *FormState, mediaIDs, documentIDs []string) CreateProjectRequest {
	req := CreateProjectRequest{
		CompanyID:        companyID,
		CreatedBy:        createdBy,
		Title:            form.Title,
		ShortDescription: form.ShortDescription,
		Type:             form.Type,
		SDGs:             form.SDGs,
		Slug:             form.Slug,
		Location: model.Location{
			Country: form.Country,
			City:    form.City,
			Address: form.Address,
		},
		VolunteerTarget: form.VolunteerTarget,
		DeliveryMode:    form.DeliveryMode,
		Budget:          form.Budget,
		MediaIDs:        mediaIDs,
		DocumentIDs:     documentIDs,
	}
	if form.StartDate != nil {
		req.StartDate = *form.StartDate
	}
	if form.EndDate != nil {
		req.EndDate = *form.EndDate
	}

	for _, line := range form.BudgetBreakdown {
		if line.Category != "" && line.Amount > 0 {
			req.BudgetBreakdown = append(req.BudgetBreakdown, line)
		}
	}
	for _, a := range form.Approvers {
		if a.Name != "" && a.Email != "" {
			req.Approvers = append(req.Approvers, a)
		}
	}
	return req
}
