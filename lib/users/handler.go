package usershandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rain-knows/approval-system/db"
	departmentstore "github.com/rain-knows/approval-system/lib/dicts/department/store"
	usersstore "github.com/rain-knows/approval-system/lib/users/store"
	authutils "github.com/rain-knows/approval-system/lib/utils/auth-utils"
	"github.com/rain-knows/approval-system/models"
	usersapimodels "github.com/rain-knows/approval-system/models/api/users"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Create(data usersapimodels.UserData) (id string, hMsg string, err error)
	GetByID(id string) (view usersapimodels.UserView, hMsg string, err error)
	List(filter usersapimodels.UserFilter) (list []usersapimodels.UserView, rowCount int64, err error)
	Update(id string, data usersapimodels.UserData) (hMsg string, err error)
	Delete(id string) (hMsg string, err error)
	SetStatus(id string, status models.UserStatus) (hMsg string, err error)
	ChangePassword(id string, data usersapimodels.ChangePasswordData) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           usersstore.NewInstance(db.DB),
		departmentStore: departmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           usersstore.Provider
	departmentStore departmentstore.Provider
}

const msgUserNotFound = "пользователь не найден"

func (i impl) Create(data usersapimodels.UserData) (id string, hMsg string, err error) {
	logger := log.WithField("username", data.Username)
	err = data.ValidateCreate()
	if err != nil {
		return "", err.Error(), nil
	}
	exist, err := i.store.GetByUsername(data.Username)
	if err != nil {
		logger.WithError(err).Error("ошибка проверки уникальности пользователя")
		return "", "", err
	}
	if exist != nil {
		return "", "пользователь с таким именем уже существует", nil
	}
	if data.DepartmentID != "" {
		department, err := i.departmentStore.GetByID(data.DepartmentID)
		if err != nil {
			return "", "", err
		}
		if department == nil {
			return "", "указанное подразделение не найдено", nil
		}
	}
	rec := dbmodels.User{
		Username: data.Username,
		Password: authutils.GetMD5Hash(data.Password),
		Nickname: data.Nickname,
		Email:    data.Email,
		Phone:    data.Phone,
		Avatar:   data.Avatar,
		Status:   models.UserStatusActive,
	}
	if data.Status != nil {
		rec.Status = *data.Status
	}
	if data.DepartmentID != "" {
		departmentID := data.DepartmentID
		rec.DepartmentID = &departmentID
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := usersstore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		if len(data.RoleIDs) != 0 {
			return store.SetRoles(id, data.RoleIDs)
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания пользователя")
		return "", "", err
	}
	logger.WithField("rec_id", id).Info("создан пользователь")
	return id, "", nil
}

func (i impl) GetByID(id string) (view usersapimodels.UserView, hMsg string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("rec_id", id).
			WithError(err).Error("ошибка получения пользователя")
		return usersapimodels.UserView{}, "", err
	}
	if rec == nil {
		return usersapimodels.UserView{}, msgUserNotFound, nil
	}
	return usersapimodels.UserConvert(*rec), "", nil
}

func (i impl) List(filter usersapimodels.UserFilter) (list []usersapimodels.UserView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) > rowCount {
		return []usersapimodels.UserView{}, rowCount, nil
	}
	recList, err := i.store.List(filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка пользователей")
		return nil, 0, err
	}
	list = make([]usersapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, usersapimodels.UserConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Update(id string, data usersapimodels.UserData) (hMsg string, err error) {
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
		return msgUserNotFound, nil
	}
	if rec.Username != data.Username {
		if rec.IsAdminAccount() {
			return "учетную запись администратора нельзя переименовать", nil
		}
		exist, err := i.store.GetByUsername(data.Username)
		if err != nil {
			return "", err
		}
		if exist != nil {
			return "пользователь с таким именем уже существует", nil
		}
	}
	updMap := map[string]interface{}{
		"username": data.Username,
		"nickname": data.Nickname,
		"email":    data.Email,
		"phone":    data.Phone,
		"avatar":   data.Avatar,
	}
	if data.Password != "" {
		if len(data.Password) < 6 {
			return "пароль должен содержать не менее 6 символов", nil
		}
		updMap["password"] = authutils.GetMD5Hash(data.Password)
	}
	if data.DepartmentID != "" {
		department, err := i.departmentStore.GetByID(data.DepartmentID)
		if err != nil {
			return "", err
		}
		if department == nil {
			return "указанное подразделение не найдено", nil
		}
		updMap["department_id"] = data.DepartmentID
	} else {
		updMap["department_id"] = nil
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := usersstore.NewInstance(tx)
		err := store.Update(id, updMap)
		if err != nil {
			return err
		}
		return store.SetRoles(id, data.RoleIDs)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка обновления пользователя")
		return "", err
	}
	logger.Info("обновлен пользователь")
	return "", nil
}

func (i impl) Delete(id string) (hMsg string, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return msgUserNotFound, nil
	}
	if rec.IsAdminAccount() {
		return "учетную запись администратора нельзя удалить", nil
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления пользователя")
		return "", err
	}
	logger.Info("удален пользователь")
	return "", nil
}

func (i impl) SetStatus(id string, status models.UserStatus) (hMsg string, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return msgUserNotFound, nil
	}
	if rec.IsAdminAccount() && status == models.UserStatusBlocked {
		return "учетную запись администратора нельзя заблокировать", nil
	}
	err = i.store.Update(id, map[string]interface{}{"status": status})
	if err != nil {
		logger.WithError(err).Error("ошибка изменения статуса пользователя")
		return "", err
	}
	logger.WithField("status", status).Info("изменен статус пользователя")
	return "", nil
}

func (i impl) ChangePassword(id string, data usersapimodels.ChangePasswordData) (hMsg string, err error) {
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
		return msgUserNotFound, nil
	}
	if rec.Password != authutils.GetMD5Hash(data.OldPassword) {
		return "текущий пароль указан неверно", nil
	}
	newHash := authutils.GetMD5Hash(data.NewPassword)
	if rec.Password == newHash {
		return "новый пароль должен отличаться от текущего", nil
	}
	err = i.store.Update(id, map[string]interface{}{"password": newHash})
	if err != nil {
		logger.WithError(err).Error("ошибка смены пароля")
		return "", err
	}
	logger.Info("изменен пароль пользователя")
	return "", nil
}
