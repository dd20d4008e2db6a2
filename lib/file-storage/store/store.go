package filestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(rec dbmodels.Attachment) (id string, err error)
	GetByID(id string) (rec *dbmodels.Attachment, err error)
	ListByApproval(approvalID string) (list []dbmodels.Attachment, err error)
	ListByIDs(ids []string) (list []dbmodels.Attachment, err error)
	// AttachToApproval привязывает свободное вложение к записи согласования
	AttachToApproval(id, approvalID string) error
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Attachment) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Attachment, error) {
	rec := dbmodels.Attachment{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) ListByApproval(approvalID string) (list []dbmodels.Attachment, err error) {
	list = []dbmodels.Attachment{}
	err = i.db.
		Where("approval_id = ?", approvalID).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка вложений")
	}
	return list, nil
}

func (i impl) ListByIDs(ids []string) (list []dbmodels.Attachment, err error) {
	list = []dbmodels.Attachment{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id IN ?", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вложений по списку")
	}
	return list, nil
}

func (i impl) AttachToApproval(id, approvalID string) error {
	result := i.db.
		Model(&dbmodels.Attachment{}).
		Where("id = ?", id).
		Where("approval_id = ?", "").
		Update("approval_id", approvalID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("вложение не найдено или уже привязано к согласованию")
	}
	return nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Attachment{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления вложения")
	}
	return nil
}
