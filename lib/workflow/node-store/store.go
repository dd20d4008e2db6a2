package workflownodestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkflowNodeTemplate) (id string, err error)
	// ListByWorkflow возвращает узлы отсортированными по порядку подписания
	ListByWorkflow(workflowID string) (list []dbmodels.WorkflowNodeTemplate, err error)
	DeleteByWorkflow(workflowID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkflowNodeTemplate) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByWorkflow(workflowID string) (list []dbmodels.WorkflowNodeTemplate, err error) {
	list = []dbmodels.WorkflowNodeTemplate{}
	err = i.db.
		Where("workflow_id = ?", workflowID).
		Order("node_order ASC").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteByWorkflow(workflowID string) error {
	err := i.db.
		Where("workflow_id = ?", workflowID).
		Delete(&dbmodels.WorkflowNodeTemplate{}).
		Error
	if err != nil {
		return err
	}
	return nil
}
