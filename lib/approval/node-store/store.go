package approvalnodestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rain-knows/approval-system/models"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(node dbmodels.ApprovalNode) (id string, err error)
	ListByApproval(approvalID string) (list []dbmodels.ApprovalNode, err error)
	GetByOrder(approvalID string, nodeOrder int) (node *dbmodels.ApprovalNode, err error)
	ListPendingForApprover(approverID string) (list []dbmodels.ApprovalNode, err error)
	Update(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(node dbmodels.ApprovalNode) (id string, err error) {
	err = i.db.
		Omit("Approver").
		Create(&node).
		Error
	if err != nil {
		return "", err
	}
	return node.ID, nil
}

func (i impl) ListByApproval(approvalID string) (list []dbmodels.ApprovalNode, err error) {
	list = []dbmodels.ApprovalNode{}
	err = i.db.
		Where("approval_id = ?", approvalID).
		Order("node_order ASC").
		Preload("Approver").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения узлов согласования")
	}
	return list, nil
}

func (i impl) GetByOrder(approvalID string, nodeOrder int) (*dbmodels.ApprovalNode, error) {
	node := dbmodels.ApprovalNode{}
	err := i.db.
		Where("approval_id = ?", approvalID).
		Where("node_order = ?", nodeOrder).
		Preload("Approver").
		First(&node).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &node, nil
}

// ListPendingForApprover возвращает узлы в работе, назначенные на согласующего,
// только для записей в статусе "на согласовании" и только на текущем шаге.
func (i impl) ListPendingForApprover(approverID string) (list []dbmodels.ApprovalNode, err error) {
	list = []dbmodels.ApprovalNode{}
	err = i.db.
		Joins("JOIN approval_records ON approval_records.id = approval_nodes.approval_id").
		Where("approval_nodes.approver_id = ?", approverID).
		Where("approval_nodes.status = ?", models.NodeStatusPending).
		Where("approval_records.status = ?", models.RecordStatusPending).
		Where("approval_records.current_node_order = approval_nodes.node_order").
		Order("approval_nodes.created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения узлов на согласовании")
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.ApprovalNode{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}
