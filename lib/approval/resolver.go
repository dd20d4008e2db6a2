package approvalhandler

import (
	"github.com/rain-knows/approval-system/models"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

// ResolveApprover определяет согласующего для узла по стратегии шаблона.
// Никогда не возвращает ошибку: если стратегия не дала конкретного сотрудника,
// назначается резервный согласующий (admin) и взводится признак fallback.
func ResolveApprover(tmpl dbmodels.WorkflowNodeTemplate, department *dbmodels.Department) (approverID string, fallback bool) {
	switch tmpl.ApproverType {
	case models.ApproverTypeUser, models.ApproverTypePosition:
		if tmpl.ApproverID != nil && *tmpl.ApproverID != "" {
			return *tmpl.ApproverID, false
		}
	case models.ApproverTypeDepartmentHead:
		if department != nil && department.LeaderID != nil && *department.LeaderID != "" {
			return *department.LeaderID, false
		}
	}
	return models.FallbackAdminID, true
}
