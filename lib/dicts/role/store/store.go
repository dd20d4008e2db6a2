package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(rec dbmodels.Role) (id string, err error)
	GetByID(id string) (rec *dbmodels.Role, err error)
	List() (list []dbmodels.Role, err error)
	Update(id string, updMap map[string]interface{}) error
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

func (i impl) Create(rec dbmodels.Role) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.isUnique("", rec.Code)
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

func (i impl) GetByID(id string) (*dbmodels.Role, error) {
	rec := dbmodels.Role{}
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

func (i impl) List() (list []dbmodels.Role, err error) {
	list = []dbmodels.Role{}
	err = i.db.
		Order("code ASC").
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
		Model(&dbmodels.Role{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Where("role_id = ?", id).
		Delete(&dbmodels.UserRole{}).
		Error
	if err != nil {
		return err
	}
	rec := dbmodels.Role{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err = i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) isUnique(selfID, code string) error {
	var rowCount int64
	tx := i.db.Model(dbmodels.Role{})
	tx.Where("code = ?", code)
	if selfID != "" {
		tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return errors.Wrap(err, "ошибка проверки уникальности роли")
	}
	if rowCount != 0 {
		return errors.New("роль с таким кодом уже существует")
	}
	return nil
}
