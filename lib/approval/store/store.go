package approvalstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApprovalRecord) (id string, err error)
	GetByID(id string) (rec *dbmodels.ApprovalRecord, err error)
	ListByInitiator(initiatorID string, filter approvalapimodels.ApprovalFilter) (list []dbmodels.ApprovalRecord, err error)
	ListByInitiatorCount(initiatorID string, filter approvalapimodels.ApprovalFilter) (rowCount int64, err error)
	List(filter approvalapimodels.ApprovalFilter) (list []dbmodels.ApprovalRecord, err error)
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

func (i impl) Create(rec dbmodels.ApprovalRecord) (id string, err error) {
	err = i.db.
		Omit("Initiator", "Nodes").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ApprovalRecord, error) {
	rec := dbmodels.ApprovalRecord{}
	err := i.db.
		Where("id = ?", id).
		Preload("Initiator").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) listQuery(initiatorID string, filter approvalapimodels.ApprovalFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.ApprovalRecord{})
	if initiatorID != "" {
		tx = tx.Where("initiator_id = ?", initiatorID)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", *filter.Status)
	}
	return tx
}

func (i impl) ListByInitiator(initiatorID string, filter approvalapimodels.ApprovalFilter) (list []dbmodels.ApprovalRecord, err error) {
	list = []dbmodels.ApprovalRecord{}
	page, limit := filter.GetPage()
	err = i.listQuery(initiatorID, filter).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Initiator").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByInitiatorCount(initiatorID string, filter approvalapimodels.ApprovalFilter) (rowCount int64, err error) {
	err = i.listQuery(initiatorID, filter).Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка подсчета записей согласования")
	}
	return rowCount, nil
}

func (i impl) List(filter approvalapimodels.ApprovalFilter) (list []dbmodels.ApprovalRecord, err error) {
	list = []dbmodels.ApprovalRecord{}
	err = i.listQuery("", filter).
		Order("created_at DESC").
		Preload("Initiator").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.ApprovalRecord{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}
