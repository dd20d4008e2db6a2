package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "github.com/rain-knows/approval-system/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Department")
	}
	if err := DB.AutoMigrate(&dbmodels.Role{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Role")
	}
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.UserRole{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры UserRole")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalType{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApprovalType")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkflowTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowTemplate")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkflowNodeTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowNodeTemplate")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalRecord{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApprovalRecord")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalNode{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApprovalNode")
	}
	if err := DB.AutoMigrate(&dbmodels.Attachment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Attachment")
	}
	if err := DB.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Notification")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
