package models

// Статусы записи согласования
type RecordStatus int

const (
	RecordStatusPending   RecordStatus = 1 // на согласовании
	RecordStatusApproved  RecordStatus = 2 // согласована
	RecordStatusRejected  RecordStatus = 3 // отклонена
	RecordStatusCancelled RecordStatus = 4 // отозвана инициатором
)

var recordStatusHumanName = map[RecordStatus]string{
	RecordStatusPending:   "На согласовании",
	RecordStatusApproved:  "Согласована",
	RecordStatusRejected:  "Отклонена",
	RecordStatusCancelled: "Отозвана",
}

func (s RecordStatus) ToHuman() string {
	if human, exist := recordStatusHumanName[s]; exist {
		return human
	}
	return "Неизвестный статус"
}

// Статусы узла согласования
type NodeStatus int

const (
	NodeStatusPending  NodeStatus = 0 // ожидает решения
	NodeStatusApproved NodeStatus = 1 // согласован
	NodeStatusRejected NodeStatus = 2 // отклонен
)

var nodeStatusHumanName = map[NodeStatus]string{
	NodeStatusPending:  "Ожидает решения",
	NodeStatusApproved: "Согласован",
	NodeStatusRejected: "Отклонен",
}

func (s NodeStatus) ToHuman() string {
	if human, exist := nodeStatusHumanName[s]; exist {
		return human
	}
	return "Неизвестный статус"
}

// Стратегия определения согласующего для узла шаблона
type ApproverType string

const (
	ApproverTypeUser           ApproverType = "USER"            // фиксированный пользователь
	ApproverTypeDepartmentHead ApproverType = "DEPARTMENT_HEAD" // руководитель подразделения инициатора
	ApproverTypePosition       ApproverType = "POSITION"        // по должности
)

func (t ApproverType) IsValid() bool {
	switch t {
	case ApproverTypeUser, ApproverTypeDepartmentHead, ApproverTypePosition:
		return true
	}
	return false
}

// NeedApproverRef - стратегии, требующие явной ссылки на согласующего в шаблоне
func (t ApproverType) NeedApproverRef() bool {
	return t == ApproverTypeUser || t == ApproverTypePosition
}

// FallbackAdminID - резервный согласующий, назначается когда стратегия
// не смогла определить конкретного сотрудника (запись admin из предзаполнения)
const FallbackAdminID = "1"

// AdminUserName - учетная запись администратора, ее нельзя удалять и блокировать
const AdminUserName = "admin"
