package dbmodels

import (
	"github.com/pkg/errors"

	"github.com/rain-knows/approval-system/models"
)

// Шаблон маршрута согласования, один активный шаблон на тип
type WorkflowTemplate struct {
	BaseModel
	TypeCode string `gorm:"type:varchar(50);uniqueIndex"`
	Name     string `gorm:"type:varchar(100)"`
}

// Узел шаблона, Node Order задает последовательность подписания (с 1)
type WorkflowNodeTemplate struct {
	BaseModel
	WorkflowID   string `gorm:"type:varchar(36);index"`
	NodeName     string `gorm:"type:varchar(100)"`
	NodeOrder    int
	ApproverType models.ApproverType `gorm:"type:varchar(30)"`
	ApproverID   *string             `gorm:"type:varchar(36)"`
}

func (t *WorkflowNodeTemplate) Validate() error {
	if t.NodeName == "" {
		return errors.New("не указано название узла согласования")
	}
	if t.NodeOrder < 1 {
		return errors.New("порядок узла согласования должен начинаться с 1")
	}
	if !t.ApproverType.IsValid() {
		return errors.Errorf("неизвестная стратегия выбора согласующего: %v", t.ApproverType)
	}
	if t.ApproverType.NeedApproverRef() && (t.ApproverID == nil || *t.ApproverID == "") {
		return errors.Errorf("для стратегии %v необходимо указать согласующего", t.ApproverType)
	}
	return nil
}
