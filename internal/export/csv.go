package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/wasilah/csr/internal/model"
)

// FileName 带日期戳的导出文件名，如 projects-2026-08-29.csv
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", prefix, now.Format("2006-01-02"))
}

// ProjectColumns 项目导出的七列
var ProjectColumns = []string{"id", "title", "status", "type", "city", "budget", "start_date"}

// ProjectsCSV 导出项目列表，UTF-8编码，\n换行
func ProjectsCSV(projects []model.Project) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ProjectColumns); err != nil {
		return nil, fmt.Errorf("导出项目CSV失败: %w", err)
	}
	for _, p := range projects {
		record := []string{
			p.ID,
			p.Title,
			string(p.Status),
			string(p.Type),
			p.Location.City,
			strconv.FormatFloat(p.Budget, 'f', -1, 64),
			p.StartDate.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("导出项目CSV失败: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("导出项目CSV失败: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseProjectsCSV 读回项目导出文件，校验往返无损时使用
func ParseProjectsCSV(data []byte) ([]model.Project, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析项目CSV失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	projects := make([]model.Project, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(ProjectColumns) {
			return nil, fmt.Errorf("列数不匹配: 期望%d列，实际%d列", len(ProjectColumns), len(row))
		}
		budget, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, fmt.Errorf("解析预算失败: %w", err)
		}
		start, err := time.Parse("2006-01-02", row[6])
		if err != nil {
			return nil, fmt.Errorf("解析开始日期失败: %w", err)
		}
		projects = append(projects, model.Project{
			ID:        row[0],
			Title:     row[1],
			Status:    model.ProjectStatus(row[2]),
			Type:      model.ProjectType(row[3]),
			Location:  model.Location{City: row[4]},
			Budget:    budget,
			StartDate: start,
		})
	}
	return projects, nil
}

// InvoicesCSV 导出发票列表，末尾追加预算汇总块
func InvoicesCSV(invoices []model.Invoice, summary model.BudgetSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "number", "vendor", "amount", "escrow_held", "status", "issued_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("导出发票CSV失败: %w", err)
	}
	for _, inv := range invoices {
		record := []string{
			inv.ID,
			inv.Number,
			inv.Vendor,
			strconv.FormatFloat(inv.Amount, 'f', 2, 64),
			strconv.FormatFloat(inv.EscrowHeld, 'f', 2, 64),
			string(inv.Status),
			inv.IssuedAt.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("导出发票CSV失败: %w", err)
		}
	}

	// 汇总块
	summaryRows := [][]string{
		{},
		{"summary", "", "", "", "", "", ""},
		{"spent", strconv.FormatFloat(summary.Spent, 'f', 2, 64), "", "", "", "", ""},
		{"pending", strconv.FormatFloat(summary.Pending, 'f', 2, 64), "", "", "", "", ""},
		{"escrow_held", strconv.FormatFloat(summary.EscrowHeld, 'f', 2, 64), "", "", "", "", ""},
		{"remaining", strconv.FormatFloat(summary.Remaining, 'f', 2, 64), "", "", "", "", ""},
	}
	for _, row := range summaryRows {
		if len(row) == 0 {
			continue
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("导出发票CSV失败: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("导出发票CSV失败: %w", err)
	}
	return buf.Bytes(), nil
}

// VolunteersCSV 导出志愿者申请列表
func VolunteersCSV(apps []model.VolunteerApplication) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "name", "email", "university", "status", "applied_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("导出志愿者CSV失败: %w", err)
	}
	for _, a := range apps {
		record := []string{
			a.ID,
			a.Name,
			a.Email,
			a.University,
			string(a.Status),
			a.AppliedAt.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("导出志愿者CSV失败: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("导出志愿者CSV失败: %w", err)
	}
	return buf.Bytes(), nil
}
