package usersapimodels

import (
	"time"

	"github.com/pkg/errors"

	"github.com/rain-knows/approval-system/models"
	apimodels "github.com/rain-knows/approval-system/models/api"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type UserData struct {
	Username     string             `json:"username"`
	Password     string             `json:"password"` // при обновлении пустое значение оставляет пароль без изменений
	Nickname     string             `json:"nickname"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	Avatar       string             `json:"avatar"`
	DepartmentID string             `json:"department_id"`
	Status       *models.UserStatus `json:"status"`
	RoleIDs      []string           `json:"role_ids"`
}

func (r UserData) Validate() error {
	if r.Username == "" {
		return errors.New("не указано имя пользователя")
	}
	return nil
}

func (r UserData) ValidateCreate() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	if len(r.Password) < 6 {
		return errors.New("пароль должен содержать не менее 6 символов")
	}
	return nil
}

type UserFilter struct {
	apimodels.Pagination
	Keyword      string             `json:"keyword"` // поиск по имени/нику/почте
	DepartmentID string             `json:"department_id"`
	Status       *models.UserStatus `json:"status"`
}

func (r UserFilter) Validate() error {
	return r.Pagination.Validate()
}

type ChangePasswordData struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r ChangePasswordData) Validate() error {
	if r.OldPassword == "" {
		return errors.New("не указан текущий пароль")
	}
	if r.NewPassword == "" {
		return errors.New("не указан новый пароль")
	}
	if len(r.NewPassword) < 6 {
		return errors.New("новый пароль должен содержать не менее 6 символов")
	}
	return nil
}

type SetStatusData struct {
	Status models.UserStatus `json:"status"`
}

func (r SetStatusData) Validate() error {
	if r.Status != models.UserStatusActive && r.Status != models.UserStatusBlocked {
		return errors.New("недопустимый статус пользователя")
	}
	return nil
}

type RoleInfo struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type UserView struct {
	ID             string            `json:"id"`
	Username       string            `json:"username"`
	Nickname       string            `json:"nickname,omitempty"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Avatar         string            `json:"avatar,omitempty"`
	DepartmentID   string            `json:"department_id,omitempty"`
	DepartmentName string            `json:"department_name,omitempty"`
	Status         models.UserStatus `json:"status"`
	Roles          []RoleInfo        `json:"roles"`
	LastLoginAt    *time.Time        `json:"last_login_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func UserConvert(rec dbmodels.User) UserView {
	view := UserView{
		ID:          rec.ID,
		Username:    rec.Username,
		Nickname:    rec.Nickname,
		Email:       rec.Email,
		Phone:       rec.Phone,
		Avatar:      rec.Avatar,
		Status:      rec.Status,
		Roles:       make([]RoleInfo, 0, len(rec.Roles)),
		LastLoginAt: rec.LastLoginAt,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if rec.DepartmentID != nil {
		view.DepartmentID = *rec.DepartmentID
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	for _, role := range rec.Roles {
		view.Roles = append(view.Roles, RoleInfo{
			ID:   role.ID,
			Code: role.Code,
			Name: role.Name,
		})
	}
	return view
}
