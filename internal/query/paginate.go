package query

import "github.com/wasilah/csr/internal/model"

// Page 分页结果
type Page struct {
	Items    []model.Project `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// Paginate 对筛选结果做分页切片，页码从1开始，越界页返回空列表
func Paginate(projects []model.Project, page, pageSize int) Page {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(projects) {
		start = len(projects)
	}
	if end > len(projects) {
		end = len(projects)
	}

	return Page{
		Items:    projects[start:end],
		Total:    len(projects),
		Page:     page,
		PageSize: pageSize,
	}
}
