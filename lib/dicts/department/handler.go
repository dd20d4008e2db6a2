package departmentprovider

import (
	log "github.com/sirupsen/logrus"

	"github.com/rain-knows/approval-system/db"
	"github.com/rain-knows/approval-system/lib/dicts/department/store"
	dictapimodels "github.com/rain-knows/approval-system/models/api/dict"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(data dictapimodels.DepartmentData) (id string, hMsg string, err error)
	Get(id string) (item dictapimodels.DepartmentView, hMsg string, err error)
	List() (list []dictapimodels.DepartmentView, err error)
	Update(id string, data dictapimodels.DepartmentData) (hMsg string, err error)
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

const msgNotFound = "подразделение не найдено"

func (i impl) Create(data dictapimodels.DepartmentData) (id string, hMsg string, err error) {
	logger := log.WithField("name", data.Name)
	err = data.Validate()
	if err != nil {
		return "", err.Error(), nil
	}
	rec := dbmodels.Department{
		Name:     data.Name,
		ParentID: data.ParentID,
		Sort:     data.Sort,
	}
	if data.LeaderID != "" {
		leaderID := data.LeaderID
		rec.LeaderID = &leaderID
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания подразделения")
		return "", "", err
	}
	logger.WithField("rec_id", id).Info("создано подразделение")
	return id, "", nil
}

func (i impl) Get(id string) (item dictapimodels.DepartmentView, hMsg string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("rec_id", id).
			WithError(err).Error("ошибка получения подразделения")
		return dictapimodels.DepartmentView{}, "", err
	}
	if rec == nil {
		return dictapimodels.DepartmentView{}, msgNotFound, nil
	}
	return dictapimodels.DepartmentConvert(*rec), "", nil
}

func (i impl) List() (list []dictapimodels.DepartmentView, err error) {
	recList, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка подразделений")
		return nil, err
	}
	list = make([]dictapimodels.DepartmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.DepartmentConvert(rec))
	}
	return list, nil
}

func (i impl) Update(id string, data dictapimodels.DepartmentData) (hMsg string, err error) {
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
		"name":      data.Name,
		"parent_id": data.ParentID,
		"sort":      data.Sort,
	}
	if data.LeaderID != "" {
		updMap["leader_id"] = data.LeaderID
	} else {
		updMap["leader_id"] = nil
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления подразделения")
		return "", err
	}
	logger.Info("обновлено подразделение")
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
		logger.WithError(err).Error("ошибка удаления подразделения")
		return "", err
	}
	logger.Info("удалено подразделение")
	return "", nil
}
