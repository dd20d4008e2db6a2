package approvaltypestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rain-knows/approval-system/models"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApprovalType) (id string, err error)
	GetByID(id string) (rec *dbmodels.ApprovalType, err error)
	// GetEnabledByCode ищет только включенные типы, отключенные для вызывающего не существуют
	GetEnabledByCode(code string) (rec *dbmodels.ApprovalType, err error)
	GetByCode(code string) (rec *dbmodels.ApprovalType, err error)
	ListEnabled() (list []dbmodels.ApprovalType, err error)
	List() (list []dbmodels.ApprovalType, err error)
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

func (i impl) Create(rec dbmodels.ApprovalType) (id string, err error) {
	err = rec.Validate()
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

func (i impl) GetByID(id string) (*dbmodels.ApprovalType, error) {
	rec := dbmodels.ApprovalType{}
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

func (i impl) GetEnabledByCode(code string) (*dbmodels.ApprovalType, error) {
	rec := dbmodels.ApprovalType{}
	err := i.db.
		Where("code = ?", code).
		Where("status = ?", models.TypeStatusEnabled).
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

func (i impl) GetByCode(code string) (*dbmodels.ApprovalType, error) {
	rec := dbmodels.ApprovalType{}
	err := i.db.
		Where("code = ?", code).
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

func (i impl) ListEnabled() (list []dbmodels.ApprovalType, err error) {
	list = []dbmodels.ApprovalType{}
	err = i.db.
		Where("status = ?", models.TypeStatusEnabled).
		Order("sort ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) List() (list []dbmodels.ApprovalType, err error) {
	list = []dbmodels.ApprovalType{}
	err = i.db.
		Order("sort ASC").
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
		Model(&dbmodels.ApprovalType{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}
