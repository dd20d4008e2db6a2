package notificationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	apimodels "github.com/rain-knows/approval-system/models/api"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id string, err error)
	ListByUser(userID string, filter apimodels.Pagination) (list []dbmodels.Notification, err error)
	ListByUserCount(userID string) (rowCount int64, err error)
	UnreadCount(userID string) (rowCount int64, err error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByUser(userID string, filter apimodels.Pagination) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	page, limit := filter.GetPage()
	err = i.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка уведомлений")
	}
	return list, nil
}

func (i impl) ListByUserCount(userID string) (rowCount int64, err error) {
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка подсчета уведомлений")
	}
	return rowCount, nil
}

func (i impl) UnreadCount(userID string) (rowCount int64, err error) {
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка подсчета непрочитанных уведомлений")
	}
	return rowCount, nil
}

func (i impl) MarkRead(userID, id string) error {
	err := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Update("is_read", true).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка отметки уведомления прочитанным")
	}
	return nil
}

func (i impl) MarkAllRead(userID string) error {
	err := i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Update("is_read", true).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка отметки уведомлений прочитанными")
	}
	return nil
}
