package dictapimodels

import (
	"github.com/pkg/errors"

	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type DepartmentData struct {
	Name     string `json:"name"`      // название подразделения
	ParentID string `json:"parent_id"` // родительское подразделение
	LeaderID string `json:"leader_id"` // руководитель, используется при выборе согласующего
	Sort     int    `json:"sort"`
}

func (r DepartmentData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}

type DepartmentView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
	LeaderID string `json:"leader_id,omitempty"`
	Sort     int    `json:"sort"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	view := DepartmentView{
		ID:       rec.ID,
		Name:     rec.Name,
		ParentID: rec.ParentID,
		Sort:     rec.Sort,
	}
	if rec.LeaderID != nil {
		view.LeaderID = *rec.LeaderID
	}
	return view
}

type RoleData struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func (r RoleData) Validate() error {
	if r.Code == "" {
		return errors.New("не указан код роли")
	}
	if r.Name == "" {
		return errors.New("не указано название роли")
	}
	return nil
}

type RoleView struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

func RoleConvert(rec dbmodels.Role) RoleView {
	return RoleView{
		ID:          rec.ID,
		Code:        rec.Code,
		Name:        rec.Name,
		Description: rec.Description,
		Permissions: rec.Permissions,
	}
}
