package approvalapimodels

import (
	"github.com/pkg/errors"

	"github.com/rain-knows/approval-system/models"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type WorkflowNodeData struct {
	NodeName     string              `json:"node_name"`     // название этапа
	NodeOrder    int                 `json:"node_order"`    // порядок этапа (с 1)
	ApproverType models.ApproverType `json:"approver_type"` // стратегия выбора согласующего
	ApproverID   string              `json:"approver_id"`   // фиксированный согласующий (USER/POSITION)
}

type WorkflowSaveData struct {
	Name  string             `json:"name"`  // название маршрута
	Nodes []WorkflowNodeData `json:"nodes"` // упорядоченные этапы
}

func (r WorkflowSaveData) Validate() error {
	if len(r.Nodes) == 0 {
		return errors.New("маршрут согласования должен содержать хотя бы один этап")
	}
	orders := map[int]bool{}
	for _, node := range r.Nodes {
		if node.NodeName == "" {
			return errors.New("не указано название этапа согласования")
		}
		if node.NodeOrder < 1 {
			return errors.New("порядок этапа согласования должен начинаться с 1")
		}
		if orders[node.NodeOrder] {
			return errors.Errorf("порядок этапа %v указан повторно", node.NodeOrder)
		}
		orders[node.NodeOrder] = true
		if !node.ApproverType.IsValid() {
			return errors.Errorf("неизвестная стратегия выбора согласующего: %v", node.ApproverType)
		}
		if node.ApproverType.NeedApproverRef() && node.ApproverID == "" {
			return errors.Errorf("для стратегии %v необходимо указать согласующего", node.ApproverType)
		}
	}
	return nil
}

type WorkflowView struct {
	ID       string             `json:"id"`
	TypeCode string             `json:"type_code"`
	Name     string             `json:"name"`
	Nodes    []WorkflowNodeView `json:"nodes"`
}

type WorkflowNodeView struct {
	ID           string              `json:"id"`
	NodeName     string              `json:"node_name"`
	NodeOrder    int                 `json:"node_order"`
	ApproverType models.ApproverType `json:"approver_type"`
	ApproverID   string              `json:"approver_id,omitempty"`
}

func WorkflowNodeConvert(rec dbmodels.WorkflowNodeTemplate) WorkflowNodeView {
	view := WorkflowNodeView{
		ID:           rec.ID,
		NodeName:     rec.NodeName,
		NodeOrder:    rec.NodeOrder,
		ApproverType: rec.ApproverType,
	}
	if rec.ApproverID != nil {
		view.ApproverID = *rec.ApproverID
	}
	return view
}

func WorkflowConvert(rec dbmodels.WorkflowTemplate, nodes []dbmodels.WorkflowNodeTemplate) WorkflowView {
	view := WorkflowView{
		ID:       rec.ID,
		TypeCode: rec.TypeCode,
		Name:     rec.Name,
		Nodes:    make([]WorkflowNodeView, 0, len(nodes)),
	}
	for _, node := range nodes {
		view.Nodes = append(view.Nodes, WorkflowNodeConvert(node))
	}
	return view
}
