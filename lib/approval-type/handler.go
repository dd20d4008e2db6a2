package approvaltypehandler

import (
	log "github.com/sirupsen/logrus"

	"github.com/rain-knows/approval-system/db"
	approvaltypestore "github.com/rain-knows/approval-system/lib/approval-type/store"
	"github.com/rain-knows/approval-system/models"
	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(data approvalapimodels.ApprovalTypeData) (id string, hMsg string, err error)
	Update(id string, data approvalapimodels.ApprovalTypeData) (hMsg string, err error)
	SetStatus(id string, enabled bool) (hMsg string, err error)
	List() (list []approvalapimodels.ApprovalTypeView, err error)
	ListEnabled() (list []approvalapimodels.ApprovalTypeView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: approvaltypestore.NewInstance(db.DB),
	}
}

type impl struct {
	store approvaltypestore.Provider
}

func (i impl) Create(data approvalapimodels.ApprovalTypeData) (id string, hMsg string, err error) {
	logger := log.WithField("type_code", data.Code)
	err = data.Validate()
	if err != nil {
		return "", err.Error(), nil
	}
	exist, err := i.store.GetByCode(data.Code)
	if err != nil {
		logger.WithError(err).Error("ошибка проверки уникальности типа согласования")
		return "", "", err
	}
	if exist != nil {
		return "", "тип согласования с таким кодом уже существует", nil
	}
	rec := dbmodels.ApprovalType{
		Code:   data.Code,
		Name:   data.Name,
		Icon:   data.Icon,
		Color:  data.Color,
		Status: models.TypeStatusEnabled,
		Sort:   data.Sort,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания типа согласования")
		return "", "", err
	}
	logger.WithField("rec_id", id).Info("создан тип согласования")
	return id, "", nil
}

func (i impl) Update(id string, data approvalapimodels.ApprovalTypeData) (hMsg string, err error) {
	logger := log.WithField("rec_id", id)
	err = data.Validate()
	if err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "тип согласования не найден", nil
	}
	if rec.Code != data.Code {
		exist, err := i.store.GetByCode(data.Code)
		if err != nil {
			return "", err
		}
		if exist != nil {
			return "тип согласования с таким кодом уже существует", nil
		}
	}
	updMap := map[string]interface{}{
		"code":  data.Code,
		"name":  data.Name,
		"icon":  data.Icon,
		"color": data.Color,
		"sort":  data.Sort,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления типа согласования")
		return "", err
	}
	logger.Info("обновлен тип согласования")
	return "", nil
}

func (i impl) SetStatus(id string, enabled bool) (hMsg string, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "тип согласования не найден", nil
	}
	status := models.TypeStatusDisabled
	if enabled {
		status = models.TypeStatusEnabled
	}
	err = i.store.Update(id, map[string]interface{}{"status": status})
	if err != nil {
		logger.WithError(err).Error("ошибка изменения статуса типа согласования")
		return "", err
	}
	logger.WithField("enabled", enabled).Info("изменен статус типа согласования")
	return "", nil
}

func (i impl) List() (list []approvalapimodels.ApprovalTypeView, err error) {
	recList, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка типов согласования")
		return nil, err
	}
	return convertList(recList), nil
}

func (i impl) ListEnabled() (list []approvalapimodels.ApprovalTypeView, err error) {
	recList, err := i.store.ListEnabled()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка типов согласования")
		return nil, err
	}
	return convertList(recList), nil
}

func convertList(recList []dbmodels.ApprovalType) []approvalapimodels.ApprovalTypeView {
	list := make([]approvalapimodels.ApprovalTypeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, approvalapimodels.ApprovalTypeConvert(rec))
	}
	return list
}
