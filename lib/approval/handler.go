package approvalhandler

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rain-knows/approval-system/db"
	approvaltypestore "github.com/rain-knows/approval-system/lib/approval-type/store"
	approvalnodestore "github.com/rain-knows/approval-system/lib/approval/node-store"
	approvalstore "github.com/rain-knows/approval-system/lib/approval/store"
	filestore "github.com/rain-knows/approval-system/lib/file-storage/store"
	notificationhandler "github.com/rain-knows/approval-system/lib/notification"
	usersstore "github.com/rain-knows/approval-system/lib/users/store"
	workflownodestore "github.com/rain-knows/approval-system/lib/workflow/node-store"
	workflowstore "github.com/rain-knows/approval-system/lib/workflow/store"
	"github.com/rain-knows/approval-system/models"
	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(userID string, data approvalapimodels.ApprovalCreateData) (view approvalapimodels.ApprovalRecordView, hMsg string, err error)
	GetMyApprovals(userID string, filter approvalapimodels.ApprovalFilter) (list []approvalapimodels.ApprovalRecordView, rowCount int64, err error)
	// ListAll - выборка по всем инициаторам для отчетов, без постраничности
	ListAll(filter approvalapimodels.ApprovalFilter) (list []approvalapimodels.ApprovalRecordView, err error)
	GetDetail(id string) (view approvalapimodels.ApprovalRecordView, err error)
	PendingForMe(userID string) (list []approvalapimodels.ApprovalRecordView, err error)
	Approve(id, userID string, data approvalapimodels.DecisionData) (hMsg string, err error)
	Reject(id, userID string, data approvalapimodels.DecisionData) (hMsg string, err error)
	Cancel(id, userID string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:             approvalstore.NewInstance(db.DB),
		nodeStore:         approvalnodestore.NewInstance(db.DB),
		typeStore:         approvaltypestore.NewInstance(db.DB),
		workflowStore:     workflowstore.NewInstance(db.DB),
		workflowNodeStore: workflownodestore.NewInstance(db.DB),
		usersStore:        usersstore.NewInstance(db.DB),
		fileStore:         filestore.NewInstance(db.DB),
	}
}

type impl struct {
	store             approvalstore.Provider
	nodeStore         approvalnodestore.Provider
	typeStore         approvaltypestore.Provider
	workflowStore     workflowstore.Provider
	workflowNodeStore workflownodestore.Provider
	usersStore        usersstore.Provider
	fileStore         filestore.Provider
}

const (
	msgRecNotFound = "запись согласования не найдена"
)

func (i impl) Create(userID string, data approvalapimodels.ApprovalCreateData) (view approvalapimodels.ApprovalRecordView, hMsg string, err error) {
	logger := log.
		WithField("user_id", userID).
		WithField("type_code", data.TypeCode)
	err = data.Validate()
	if err != nil {
		return approvalapimodels.ApprovalRecordView{}, err.Error(), nil
	}
	// все проверки до первой записи в базу
	approvalType, err := i.typeStore.GetEnabledByCode(data.TypeCode)
	if err != nil {
		logger.WithError(err).Error("ошибка получения типа согласования")
		return approvalapimodels.ApprovalRecordView{}, "", err
	}
	if approvalType == nil {
		return approvalapimodels.ApprovalRecordView{}, "тип согласования не найден или отключен", nil
	}
	workflow, err := i.workflowStore.GetByTypeCode(data.TypeCode)
	if err != nil {
		logger.WithError(err).Error("ошибка получения шаблона маршрута")
		return approvalapimodels.ApprovalRecordView{}, "", err
	}
	if workflow == nil {
		return approvalapimodels.ApprovalRecordView{}, "для типа согласования не настроен маршрут", nil
	}
	nodeTmpls, err := i.workflowNodeStore.ListByWorkflow(workflow.ID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения узлов маршрута")
		return approvalapimodels.ApprovalRecordView{}, "", err
	}
	if len(nodeTmpls) == 0 {
		return approvalapimodels.ApprovalRecordView{}, "в маршруте согласования нет ни одного узла", nil
	}
	initiator, err := i.usersStore.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения инициатора")
		return approvalapimodels.ApprovalRecordView{}, "", err
	}
	if initiator == nil {
		return approvalapimodels.ApprovalRecordView{}, "инициатор не найден", nil
	}
	if len(data.AttachmentIDs) != 0 {
		attachments, err := i.fileStore.ListByIDs(data.AttachmentIDs)
		if err != nil {
			logger.WithError(err).Error("ошибка получения вложений")
			return approvalapimodels.ApprovalRecordView{}, "", err
		}
		if len(attachments) != len(data.AttachmentIDs) {
			return approvalapimodels.ApprovalRecordView{}, "часть вложений не найдена", nil
		}
		for _, attachment := range attachments {
			if attachment.ApprovalID != "" {
				return approvalapimodels.ApprovalRecordView{}, "вложение уже привязано к другому согласованию", nil
			}
		}
	}

	rec := dbmodels.ApprovalRecord{
		Title:            data.Title,
		TypeCode:         data.TypeCode,
		Content:          data.Content,
		InitiatorID:      userID,
		Deadline:         data.Deadline,
		Status:           models.RecordStatusPending,
		CurrentNodeOrder: 1,
		WorkflowID:       workflow.ID,
	}
	if data.Priority != nil {
		rec.Priority = *data.Priority
	}

	var id string
	var firstApproverID string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := approvalstore.NewInstance(tx)
		nodeStore := approvalnodestore.NewInstance(tx)
		fileStore := filestore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			logger.
				WithField("request", fmt.Sprintf("%+v", data)).
				WithError(err).
				Error("ошибка создания записи согласования")
			return err
		}
		for _, tmpl := range nodeTmpls {
			approverID, fallback := ResolveApprover(tmpl, initiator.Department)
			if fallback {
				logger.
					WithField("rec_id", id).
					WithField("node_order", tmpl.NodeOrder).
					WithField("approver_type", tmpl.ApproverType).
					Warn("согласующий не определен, назначен резервный")
			}
			node := dbmodels.ApprovalNode{
				ApprovalID: id,
				NodeName:   tmpl.NodeName,
				ApproverID: approverID,
				NodeOrder:  tmpl.NodeOrder,
				Status:     models.NodeStatusPending,
			}
			_, err = nodeStore.Create(node)
			if err != nil {
				logger.WithError(err).Error("ошибка создания узла согласования")
				return err
			}
			if tmpl.NodeOrder == rec.CurrentNodeOrder {
				firstApproverID = approverID
			}
		}
		for _, attachmentID := range data.AttachmentIDs {
			err = fileStore.AttachToApproval(attachmentID, id)
			if err != nil {
				logger.
					WithField("attachment_id", attachmentID).
					WithError(err).
					Error("ошибка привязки вложения к согласованию")
				return err
			}
		}
		return nil
	})
	if err != nil {
		return approvalapimodels.ApprovalRecordView{}, "", err
	}
	logger.
		WithField("rec_id", id).
		Info("создана запись согласования")
	if firstApproverID != "" {
		notificationhandler.Instance.Notify(firstApproverID,
			"Новая заявка на согласование",
			fmt.Sprintf("Заявка «%v» ожидает вашего решения", rec.Title), id)
	}
	view, err = i.GetDetail(id)
	if err != nil {
		return approvalapimodels.ApprovalRecordView{}, "", err
	}
	return view, "", nil
}

func (i impl) GetMyApprovals(userID string, filter approvalapimodels.ApprovalFilter) (list []approvalapimodels.ApprovalRecordView, rowCount int64, err error) {
	logger := log.WithField("user_id", userID)
	rowCount, err = i.store.ListByInitiatorCount(userID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) > rowCount {
		return []approvalapimodels.ApprovalRecordView{}, rowCount, nil
	}
	recList, err := i.store.ListByInitiator(userID, filter)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка согласований")
		return nil, 0, err
	}
	list = make([]approvalapimodels.ApprovalRecordView, 0, len(recList))
	typeCache := map[string]*dbmodels.ApprovalType{}
	for _, rec := range recList {
		approvalType, ok := typeCache[rec.TypeCode]
		if !ok {
			approvalType, err = i.typeStore.GetByCode(rec.TypeCode)
			if err != nil {
				return nil, 0, err
			}
			typeCache[rec.TypeCode] = approvalType
		}
		list = append(list, approvalapimodels.ApprovalRecordConvert(rec, rec.Initiator, approvalType))
	}
	return list, rowCount, nil
}

func (i impl) ListAll(filter approvalapimodels.ApprovalFilter) (list []approvalapimodels.ApprovalRecordView, err error) {
	recList, err := i.store.List(filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка согласований")
		return nil, err
	}
	list = make([]approvalapimodels.ApprovalRecordView, 0, len(recList))
	typeCache := map[string]*dbmodels.ApprovalType{}
	for _, rec := range recList {
		approvalType, ok := typeCache[rec.TypeCode]
		if !ok {
			approvalType, err = i.typeStore.GetByCode(rec.TypeCode)
			if err != nil {
				return nil, err
			}
			typeCache[rec.TypeCode] = approvalType
		}
		list = append(list, approvalapimodels.ApprovalRecordConvert(rec, rec.Initiator, approvalType))
	}
	return list, nil
}

func (i impl) GetDetail(id string) (view approvalapimodels.ApprovalRecordView, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		logger.WithError(err).Error("ошибка получения записи согласования")
		return approvalapimodels.ApprovalRecordView{}, err
	}
	if rec == nil {
		return approvalapimodels.ApprovalRecordView{}, errors.New(msgRecNotFound)
	}
	approvalType, err := i.typeStore.GetByCode(rec.TypeCode)
	if err != nil {
		return approvalapimodels.ApprovalRecordView{}, err
	}
	nodes, err := i.nodeStore.ListByApproval(id)
	if err != nil {
		return approvalapimodels.ApprovalRecordView{}, err
	}
	attachments, err := i.fileStore.ListByApproval(id)
	if err != nil {
		return approvalapimodels.ApprovalRecordView{}, err
	}
	view = approvalapimodels.ApprovalRecordConvert(*rec, rec.Initiator, approvalType)
	view.Nodes = make([]approvalapimodels.ApprovalNodeView, 0, len(nodes))
	for _, node := range nodes {
		view.Nodes = append(view.Nodes, approvalapimodels.ApprovalNodeConvert(node))
	}
	view.Attachments = make([]approvalapimodels.AttachmentView, 0, len(attachments))
	for _, attachment := range attachments {
		view.Attachments = append(view.Attachments, approvalapimodels.AttachmentConvert(attachment))
	}
	return view, nil
}

func (i impl) PendingForMe(userID string) (list []approvalapimodels.ApprovalRecordView, err error) {
	logger := log.WithField("user_id", userID)
	nodes, err := i.nodeStore.ListPendingForApprover(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения согласований в работе")
		return nil, err
	}
	list = make([]approvalapimodels.ApprovalRecordView, 0, len(nodes))
	typeCache := map[string]*dbmodels.ApprovalType{}
	for _, node := range nodes {
		rec, err := i.store.GetByID(node.ApprovalID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		approvalType, ok := typeCache[rec.TypeCode]
		if !ok {
			approvalType, err = i.typeStore.GetByCode(rec.TypeCode)
			if err != nil {
				return nil, err
			}
			typeCache[rec.TypeCode] = approvalType
		}
		list = append(list, approvalapimodels.ApprovalRecordConvert(*rec, rec.Initiator, approvalType))
	}
	return list, nil
}

// getPendingNode возвращает запись и ее текущий узел,
// проверяя что запись существует, не обработана и за узел отвечает userID
func (i impl) getPendingNode(id, userID string) (rec *dbmodels.ApprovalRecord, node *dbmodels.ApprovalNode, hMsg string, err error) {
	rec, err = i.store.GetByID(id)
	if err != nil {
		return nil, nil, "", err
	}
	if rec == nil {
		return nil, nil, "", errors.New(msgRecNotFound)
	}
	if rec.Status != models.RecordStatusPending {
		return nil, nil, fmt.Sprintf("запись согласования уже обработана, статус: %v", rec.Status.ToHuman()), nil
	}
	node, err = i.nodeStore.GetByOrder(id, rec.CurrentNodeOrder)
	if err != nil {
		return nil, nil, "", err
	}
	if node == nil {
		return nil, nil, "", errors.New("текущий узел согласования не найден")
	}
	if node.ApproverID != userID {
		return nil, nil, "за текущий шаг отвечает другой сотрудник", nil
	}
	return rec, node, "", nil
}

func (i impl) Approve(id, userID string, data approvalapimodels.DecisionData) (hMsg string, err error) {
	logger := log.
		WithField("rec_id", id).
		WithField("user_id", userID)
	rec, node, hMsg, err := i.getPendingNode(id, userID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	now := time.Now()
	var nextApproverID string
	isLast := false
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := approvalstore.NewInstance(tx)
		nodeStore := approvalnodestore.NewInstance(tx)
		err := nodeStore.Update(node.ID, map[string]interface{}{
			"status":     models.NodeStatusApproved,
			"comment":    data.Comment,
			"decided_at": now,
		})
		if err != nil {
			logger.WithError(err).Error("ошибка обновления узла согласования")
			return err
		}
		nextNode, err := nodeStore.GetByOrder(id, rec.CurrentNodeOrder+1)
		if err != nil {
			return err
		}
		if nextNode == nil {
			isLast = true
			return store.Update(id, map[string]interface{}{
				"status":       models.RecordStatusApproved,
				"completed_at": now,
			})
		}
		nextApproverID = nextNode.ApproverID
		return store.Update(id, map[string]interface{}{
			"current_node_order": rec.CurrentNodeOrder + 1,
		})
	})
	if err != nil {
		return "", err
	}
	logger.Info("шаг согласован")
	if isLast {
		notificationhandler.Instance.Notify(rec.InitiatorID,
			"Заявка согласована",
			fmt.Sprintf("Заявка «%v» полностью согласована", rec.Title), id)
	} else if nextApproverID != "" {
		notificationhandler.Instance.Notify(nextApproverID,
			"Новая заявка на согласование",
			fmt.Sprintf("Заявка «%v» ожидает вашего решения", rec.Title), id)
	}
	return "", nil
}

func (i impl) Reject(id, userID string, data approvalapimodels.DecisionData) (hMsg string, err error) {
	logger := log.
		WithField("rec_id", id).
		WithField("user_id", userID)
	rec, node, hMsg, err := i.getPendingNode(id, userID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	now := time.Now()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := approvalstore.NewInstance(tx)
		nodeStore := approvalnodestore.NewInstance(tx)
		err := nodeStore.Update(node.ID, map[string]interface{}{
			"status":     models.NodeStatusRejected,
			"comment":    data.Comment,
			"decided_at": now,
		})
		if err != nil {
			logger.WithError(err).Error("ошибка обновления узла согласования")
			return err
		}
		return store.Update(id, map[string]interface{}{
			"status":       models.RecordStatusRejected,
			"completed_at": now,
		})
	})
	if err != nil {
		return "", err
	}
	logger.Info("заявка отклонена")
	notificationhandler.Instance.Notify(rec.InitiatorID,
		"Заявка отклонена",
		fmt.Sprintf("Заявка «%v» отклонена на шаге «%v»", rec.Title, node.NodeName), id)
	return "", nil
}

func (i impl) Cancel(id, userID string) (hMsg string, err error) {
	logger := log.
		WithField("rec_id", id).
		WithField("user_id", userID)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", errors.New(msgRecNotFound)
	}
	if rec.InitiatorID != userID {
		return "отозвать заявку может только ее инициатор", nil
	}
	if rec.Status != models.RecordStatusPending {
		return fmt.Sprintf("нельзя отозвать обработанную заявку, статус: %v", rec.Status.ToHuman()), nil
	}
	now := time.Now()
	err = i.store.Update(id, map[string]interface{}{
		"status":       models.RecordStatusCancelled,
		"completed_at": now,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отзыва заявки")
		return "", err
	}
	logger.Info("заявка отозвана")
	node, err := i.nodeStore.GetByOrder(id, rec.CurrentNodeOrder)
	if err == nil && node != nil {
		notificationhandler.Instance.Notify(node.ApproverID,
			"Заявка отозвана",
			fmt.Sprintf("Инициатор отозвал заявку «%v»", rec.Title), id)
	}
	return "", nil
}
