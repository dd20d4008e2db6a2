package workflowhandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rain-knows/approval-system/db"
	approvaltypestore "github.com/rain-knows/approval-system/lib/approval-type/store"
	workflownodestore "github.com/rain-knows/approval-system/lib/workflow/node-store"
	workflowstore "github.com/rain-knows/approval-system/lib/workflow/store"
	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	// SaveTemplate заменяет маршрут типа целиком: старые узлы удаляются, новые создаются
	SaveTemplate(typeCode string, data approvalapimodels.WorkflowSaveData) (hMsg string, err error)
	GetByTypeCode(typeCode string) (view approvalapimodels.WorkflowView, hMsg string, err error)
	DeleteByTypeCode(typeCode string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     workflowstore.NewInstance(db.DB),
		nodeStore: workflownodestore.NewInstance(db.DB),
		typeStore: approvaltypestore.NewInstance(db.DB),
	}
}

type impl struct {
	store     workflowstore.Provider
	nodeStore workflownodestore.Provider
	typeStore approvaltypestore.Provider
}

func (i impl) SaveTemplate(typeCode string, data approvalapimodels.WorkflowSaveData) (hMsg string, err error) {
	logger := log.WithField("type_code", typeCode)
	err = data.Validate()
	if err != nil {
		return err.Error(), nil
	}
	approvalType, err := i.typeStore.GetByCode(typeCode)
	if err != nil {
		logger.WithError(err).Error("ошибка получения типа согласования")
		return "", err
	}
	if approvalType == nil {
		return "тип согласования не найден", nil
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := workflowstore.NewInstance(tx)
		nodeStore := workflownodestore.NewInstance(tx)
		workflow, err := store.GetByTypeCode(typeCode)
		if err != nil {
			return err
		}
		var workflowID string
		if workflow == nil {
			workflowID, err = store.Create(dbmodels.WorkflowTemplate{
				TypeCode: typeCode,
				Name:     data.Name,
			})
			if err != nil {
				return err
			}
		} else {
			workflowID = workflow.ID
			err = store.Update(workflowID, map[string]interface{}{"name": data.Name})
			if err != nil {
				return err
			}
			err = nodeStore.DeleteByWorkflow(workflowID)
			if err != nil {
				return err
			}
		}
		for _, node := range data.Nodes {
			rec := dbmodels.WorkflowNodeTemplate{
				WorkflowID:   workflowID,
				NodeName:     node.NodeName,
				NodeOrder:    node.NodeOrder,
				ApproverType: node.ApproverType,
			}
			if node.ApproverID != "" {
				approverID := node.ApproverID
				rec.ApproverID = &approverID
			}
			_, err = nodeStore.Create(rec)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения маршрута согласования")
		return "", err
	}
	logger.Info("сохранен маршрут согласования")
	return "", nil
}

func (i impl) GetByTypeCode(typeCode string) (view approvalapimodels.WorkflowView, hMsg string, err error) {
	workflow, err := i.store.GetByTypeCode(typeCode)
	if err != nil {
		log.WithField("type_code", typeCode).
			WithError(err).Error("ошибка получения маршрута согласования")
		return approvalapimodels.WorkflowView{}, "", err
	}
	if workflow == nil {
		return approvalapimodels.WorkflowView{}, "для типа согласования не настроен маршрут", nil
	}
	nodes, err := i.nodeStore.ListByWorkflow(workflow.ID)
	if err != nil {
		return approvalapimodels.WorkflowView{}, "", err
	}
	return approvalapimodels.WorkflowConvert(*workflow, nodes), "", nil
}

func (i impl) DeleteByTypeCode(typeCode string) (hMsg string, err error) {
	logger := log.WithField("type_code", typeCode)
	workflow, err := i.store.GetByTypeCode(typeCode)
	if err != nil {
		return "", err
	}
	if workflow == nil {
		return "для типа согласования не настроен маршрут", nil
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := workflowstore.NewInstance(tx)
		nodeStore := workflownodestore.NewInstance(tx)
		err := nodeStore.DeleteByWorkflow(workflow.ID)
		if err != nil {
			return err
		}
		return store.Delete(workflow.ID)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка удаления маршрута согласования")
		return "", err
	}
	logger.Info("удален маршрут согласования")
	return "", nil
}
