package workflowstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkflowTemplate) (id string, err error)
	// GetByTypeCode возвращает первый по дате создания шаблон типа,
	// уникальность шаблона на тип обеспечивается при создании
	GetByTypeCode(typeCode string) (rec *dbmodels.WorkflowTemplate, err error)
	GetByID(id string) (rec *dbmodels.WorkflowTemplate, err error)
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

func (i impl) Create(rec dbmodels.WorkflowTemplate) (id string, err error) {
	var rowCount int64
	err = i.db.Model(&dbmodels.WorkflowTemplate{}).
		Where("type_code = ?", rec.TypeCode).
		Count(&rowCount).Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки уникальности шаблона маршрута")
	}
	if rowCount != 0 {
		return "", errors.New("для типа согласования уже настроен маршрут")
	}
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByTypeCode(typeCode string) (*dbmodels.WorkflowTemplate, error) {
	rec := dbmodels.WorkflowTemplate{}
	err := i.db.
		Where("type_code = ?", typeCode).
		Order("created_at ASC").
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

func (i impl) GetByID(id string) (*dbmodels.WorkflowTemplate, error) {
	rec := dbmodels.WorkflowTemplate{}
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.WorkflowTemplate{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.WorkflowTemplate{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}
