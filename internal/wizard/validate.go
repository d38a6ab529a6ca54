package wizard

import (
	"errors"
	"fmt"
	"math"

	"github.com/wasilah/csr/internal/model"
)

const (
	TitleMinLen       = 6
	TitleMaxLen       = 150
	DescriptionMaxLen = 400
	SDGMin            = 1
	SDGMax            = 5
	// BudgetTolerance 预算明细合计与总预算允许的误差（含边界）。
	// 是否应随预算规模缩放待产品确认，先保持固定值。
	BudgetTolerance = 1.0
)

// ValidateStep 步骤级校验，"下一步"由此把关；步骤4、5无校验规则
func ValidateStep(step Step, form *FormState) error {
	switch step {
	case StepBasicInfo:
		return validateBasicInfo(form)
	case StepLogistics:
		return validateLogistics(form)
	case StepBudget:
		return validateBudget(form)
	}
	return nil
}

func validateBasicInfo(form *FormState) error {
	titleLen := len([]rune(form.Title))
	if titleLen < TitleMinLen || titleLen > TitleMaxLen {
		return fmt.Errorf("标题长度需在%d到%d个字符之间", TitleMinLen, TitleMaxLen)
	}
	descLen := len([]rune(form.ShortDescription))
	if descLen == 0 {
		return errors.New("项目简介不能为空")
	}
	if descLen > DescriptionMaxLen {
		return fmt.Errorf("项目简介不能超过%d个字符", DescriptionMaxLen)
	}
	if len(form.SDGs) < SDGMin || len(form.SDGs) > SDGMax {
		return fmt.Errorf("需选择%d到%d个SDG目标", SDGMin, SDGMax)
	}
	for _, id := range form.SDGs {
		if !model.ValidSDG(id) {
			return fmt.Errorf("无效的SDG编号: %d", id)
		}
	}
	return nil
}

func validateLogistics(form *FormState) error {
	if form.City == "" {
		return errors.New("城市不能为空")
	}
	if form.StartDate == nil || form.EndDate == nil {
		return errors.New("开始和结束日期均为必填")
	}
	if form.EndDate.Before(*form.StartDate) {
		return errors.New("结束日期不能早于开始日期")
	}
	if form.VolunteerTarget < 0 {
		return errors.New("志愿者目标人数不能为负")
	}
	return nil
}

func validateBudget(form *FormState) error {
	if form.Budget <= 0 {
		return errors.New("总预算必须大于0")
	}
	var sum float64
	for _, line := range form.BudgetBreakdown {
		sum += line.Amount
	}
	if math.Abs(sum-form.Budget) > BudgetTolerance {
		return fmt.Errorf("预算明细合计 %.0f 与总预算 %.0f 不一致", sum, form.Budget)
	}
	return nil
}
