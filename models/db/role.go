package dbmodels

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type Role struct {
	BaseModel
	Code        string         `gorm:"type:varchar(50);uniqueIndex"`
	Name        string         `gorm:"type:varchar(100)"`
	Description string         `gorm:"type:varchar(255)"`
	Permissions pq.StringArray `gorm:"type:text[]"`
}

func (r *Role) Validate() error {
	if r.Code == "" {
		return errors.New("не указан код роли")
	}
	if r.Name == "" {
		return errors.New("не указано название роли")
	}
	return nil
}
