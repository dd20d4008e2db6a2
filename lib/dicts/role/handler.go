package roleprovider

import (
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/rain-knows/approval-system/db"
	"github.com/rain-knows/approval-system/lib/dicts/role/store"
	dictapimodels "github.com/rain-knows/approval-system/models/api/dict"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(data dictapimodels.RoleData) (id string, hMsg string, err error)
	Get(id string) (item dictapimodels.RoleView, hMsg string, err error)
	List() (list []dictapimodels.RoleView, err error)
	Update(id string, data dictapimodels.RoleData) (hMsg string, err error)
	Delete(id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: store.NewInstance(db.DB),
	}
}

type impl struct {
	store store.Provider
}

const msgNotFound = "роль не найдена"

func (i impl) Create(data dictapimodels.RoleData) (id string, hMsg string, err error) {
	logger := log.WithField("role_code", data.Code)
	err = data.Validate()
	if err != nil {
		return "", err.Error(), nil
	}
	rec := dbmodels.Role{
		Code:        data.Code,
		Name:        data.Name,
		Description: data.Description,
		Permissions: pq.StringArray(data.Permissions),
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания роли")
		return "", "", err
	}
	logger.WithField("rec_id", id).Info("создана роль")
	return id, "", nil
}

func (i impl) Get(id string) (item dictapimodels.RoleView, hMsg string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("rec_id", id).
			WithError(err).Error("ошибка получения роли")
		return dictapimodels.RoleView{}, "", err
	}
	if rec == nil {
		return dictapimodels.RoleView{}, msgNotFound, nil
	}
	return dictapimodels.RoleConvert(*rec), "", nil
}

func (i impl) List() (list []dictapimodels.RoleView, err error) {
	recList, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка ролей")
		return nil, err
	}
	list = make([]dictapimodels.RoleView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.RoleConvert(rec))
	}
	return list, nil
}

func (i impl) Update(id string, data dictapimodels.RoleData) (hMsg string, err error) {
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
		return msgNotFound, nil
	}
	updMap := map[string]interface{}{
		"code":        data.Code,
		"name":        data.Name,
		"description": data.Description,
		"permissions": pq.StringArray(data.Permissions),
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления роли")
		return "", err
	}
	logger.Info("обновлена роль")
	return "", nil
}

func (i impl) Delete(id string) (hMsg string, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return msgNotFound, nil
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления роли")
		return "", err
	}
	logger.Info("удалена роль")
	return "", nil
}
