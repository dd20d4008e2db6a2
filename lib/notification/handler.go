package notificationhandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rain-knows/approval-system/db"
	notificationstore "github.com/rain-knows/approval-system/lib/notification/store"
	"github.com/rain-knows/approval-system/lib/smtp"
	usersstore "github.com/rain-knows/approval-system/lib/users/store"
	apimodels "github.com/rain-knows/approval-system/models/api"
	notificationapimodels "github.com/rain-knows/approval-system/models/api/notification"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	// Notify сохраняет уведомление и пытается продублировать его на почту
	Notify(userID, title, content, approvalID string)
	ListMy(userID string, filter apimodels.Pagination) (list []notificationapimodels.NotificationView, rowCount int64, err error)
	UnreadCount(userID string) (rowCount int64, err error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      notificationstore.NewInstance(db.DB),
		usersStore: usersstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store:      notificationstore.NewInstance(tx),
		usersStore: usersstore.NewInstance(tx),
	}
}

type impl struct {
	store      notificationstore.Provider
	usersStore usersstore.Provider
}

func (i impl) Notify(userID, title, content, approvalID string) {
	logger := log.
		WithField("user_id", userID).
		WithField("approval_id", approvalID)
	rec := dbmodels.Notification{
		UserID:     userID,
		Title:      title,
		Content:    content,
		ApprovalID: approvalID,
	}
	_, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения уведомления")
		return
	}
	if smtp.Instance == nil {
		return
	}
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения получателя уведомления")
		return
	}
	if user == nil || user.Email == "" {
		return
	}
	err = smtp.Instance.SendEMail(user.Email, title, content)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления на почту")
	}
}

func (i impl) ListMy(userID string, filter apimodels.Pagination) (list []notificationapimodels.NotificationView, rowCount int64, err error) {
	rowCount, err = i.store.ListByUserCount(userID)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) > rowCount {
		return []notificationapimodels.NotificationView{}, rowCount, nil
	}
	recList, err := i.store.ListByUser(userID, filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]notificationapimodels.NotificationView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, notificationapimodels.NotificationConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) UnreadCount(userID string) (rowCount int64, err error) {
	return i.store.UnreadCount(userID)
}

func (i impl) MarkRead(userID, id string) error {
	return i.store.MarkRead(userID, id)
}

func (i impl) MarkAllRead(userID string) error {
	return i.store.MarkAllRead(userID)
}
