package usersstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	usersapimodels "github.com/rain-knows/approval-system/models/api/users"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(rec dbmodels.User) (id string, err error)
	GetByID(id string) (rec *dbmodels.User, err error)
	GetByUsername(username string) (rec *dbmodels.User, err error)
	List(filter usersapimodels.UserFilter) (list []dbmodels.User, err error)
	ListCount(filter usersapimodels.UserFilter) (rowCount int64, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	SetRoles(id string, roleIDs []string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (id string, err error) {
	err = i.db.
		Omit("Department", "Roles").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("id = ?", id).
		Preload("Department").
		Preload("Roles").
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

func (i impl) GetByUsername(username string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("username = ?", username).
		Preload("Department").
		Preload("Roles").
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

func (i impl) listQuery(filter usersapimodels.UserFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.User{})
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		tx = tx.Where("username LIKE ? OR nickname LIKE ? OR email LIKE ?", keyword, keyword, keyword)
	}
	if filter.DepartmentID != "" {
		tx = tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", *filter.Status)
	}
	return tx
}

func (i impl) List(filter usersapimodels.UserFilter) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	page, limit := filter.GetPage()
	err = i.listQuery(filter).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Department").
		Preload("Roles").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter usersapimodels.UserFilter) (rowCount int64, err error) {
	err = i.listQuery(filter).Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка подсчета пользователей")
	}
	return rowCount, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.User{}).
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
		Where("user_id = ?", id).
		Delete(&dbmodels.UserRole{}).
		Error
	if err != nil {
		return err
	}
	rec := dbmodels.User{
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

func (i impl) SetRoles(id string, roleIDs []string) error {
	err := i.db.
		Where("user_id = ?", id).
		Delete(&dbmodels.UserRole{}).
		Error
	if err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		rec := dbmodels.UserRole{
			UserID: id,
			RoleID: roleID,
		}
		if err = i.db.Create(&rec).Error; err != nil {
			return err
		}
	}
	return nil
}
