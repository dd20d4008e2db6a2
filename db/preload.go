package db

import (
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	authutils "github.com/rain-knows/approval-system/lib/utils/auth-utils"
	"github.com/rain-knows/approval-system/models"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

func InitPreload() {
	addAdminUser()
	fillRoles()
	fillApprovalTypes()
}

// учетная запись admin с фиксированным ид, на нее указывает резервный маршрут согласования
func addAdminUser() {
	var count int64
	err := DB.Model(&dbmodels.User{}).
		Where("username = ?", models.AdminUserName).
		Count(&count).Error
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if count > 0 {
		return
	}
	rec := dbmodels.User{
		BaseModel: dbmodels.BaseModel{ID: models.FallbackAdminID},
		Username:  models.AdminUserName,
		Password:  authutils.GetMD5Hash("admin123"),
		Nickname:  "Администратор",
		Status:    models.UserStatusActive,
	}
	if err := DB.Create(&rec).Error; err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	log.Info("добавлена учетная запись администратора")
}

func fillRoles() {
	var count int64
	if err := DB.Model(&dbmodels.Role{}).Count(&count).Error; err != nil {
		log.WithError(err).Error("ошибка предзаполнения ролей")
		return
	}
	if count > 0 {
		return
	}
	roles := []dbmodels.Role{
		{
			Code:        string(models.UserRoleAdmin),
			Name:        "Администратор",
			Description: "Полный доступ, управление справочниками и маршрутами",
			Permissions: pq.StringArray{"users:manage", "dicts:manage", "workflows:manage", "approvals:all"},
		},
		{
			Code:        string(models.UserRoleEmployee),
			Name:        "Сотрудник",
			Description: "Создание заявок и участие в согласовании",
			Permissions: pq.StringArray{"approvals:own"},
		},
	}
	for _, rec := range roles {
		if err := DB.Create(&rec).Error; err != nil {
			log.WithError(err).WithField("code", rec.Code).Error("ошибка предзаполнения ролей")
			return
		}
	}
	log.Info("роли предзаполнены")
}

// встроенные типы согласования с маршрутом по умолчанию:
// руководитель подразделения, затем администратор
func fillApprovalTypes() {
	var count int64
	if err := DB.Model(&dbmodels.ApprovalType{}).Count(&count).Error; err != nil {
		log.WithError(err).Error("ошибка предзаполнения типов согласования")
		return
	}
	if count > 0 {
		return
	}
	types := []dbmodels.ApprovalType{
		{Code: "LEAVE", Name: "Отпуск", Icon: "calendar", Color: "#1890ff", Status: models.TypeStatusEnabled, Sort: 1},
		{Code: "EXPENSE", Name: "Компенсация расходов", Icon: "wallet", Color: "#52c41a", Status: models.TypeStatusEnabled, Sort: 2},
		{Code: "PURCHASE", Name: "Закупка", Icon: "shopping", Color: "#faad14", Status: models.TypeStatusEnabled, Sort: 3},
		{Code: "BUSINESS_TRIP", Name: "Командировка", Icon: "plane", Color: "#722ed1", Status: models.TypeStatusEnabled, Sort: 4},
	}
	adminID := models.FallbackAdminID
	for _, typeRec := range types {
		if err := DB.Create(&typeRec).Error; err != nil {
			log.WithError(err).WithField("code", typeRec.Code).Error("ошибка предзаполнения типов согласования")
			return
		}
		workflow := dbmodels.WorkflowTemplate{
			TypeCode: typeRec.Code,
			Name:     "Маршрут по умолчанию: " + typeRec.Name,
		}
		if err := DB.Create(&workflow).Error; err != nil {
			log.WithError(err).WithField("code", typeRec.Code).Error("ошибка предзаполнения маршрута")
			return
		}
		nodes := []dbmodels.WorkflowNodeTemplate{
			{
				WorkflowID:   workflow.ID,
				NodeName:     "Руководитель подразделения",
				NodeOrder:    1,
				ApproverType: models.ApproverTypeDepartmentHead,
			},
			{
				WorkflowID:   workflow.ID,
				NodeName:     "Администратор",
				NodeOrder:    2,
				ApproverType: models.ApproverTypeUser,
				ApproverID:   &adminID,
			},
		}
		for _, node := range nodes {
			if err := DB.Create(&node).Error; err != nil {
				log.WithError(err).WithField("code", typeRec.Code).Error("ошибка предзаполнения узлов маршрута")
				return
			}
		}
	}
	log.Info("типы согласования предзаполнены")
}
