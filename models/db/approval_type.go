package dbmodels

import (
	"github.com/pkg/errors"

	"github.com/rain-knows/approval-system/models"
)

// Справочник типов согласования, изменяется только администраторами
type ApprovalType struct {
	BaseModel
	Code   string            `gorm:"type:varchar(50);uniqueIndex"`
	Name   string            `gorm:"type:varchar(100)"`
	Icon   string            `gorm:"type:varchar(50)"`
	Color  string            `gorm:"type:varchar(20)"`
	Status models.TypeStatus `gorm:"default:1"`
	Sort   int
}

func (t *ApprovalType) Validate() error {
	if t.Code == "" {
		return errors.New("не указан код типа согласования")
	}
	if t.Name == "" {
		return errors.New("не указано название типа согласования")
	}
	return nil
}
