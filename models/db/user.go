package dbmodels

import (
	"time"

	"github.com/rain-knows/approval-system/models"
)

type User struct {
	BaseModel
	Username     string  `gorm:"type:varchar(50);uniqueIndex"`
	Password     string  `gorm:"type:varchar(128)"`
	Nickname     string  `gorm:"type:varchar(150)"`
	Email        string  `gorm:"type:varchar(255)"`
	Phone        string  `gorm:"type:varchar(20)"`
	Avatar       string  `gorm:"type:varchar(255)"`
	DepartmentID *string `gorm:"type:varchar(36)"`
	Department   *Department
	Status       models.UserStatus `gorm:"default:1"`
	LastLoginAt  *time.Time
	Roles        []Role `gorm:"many2many:user_roles;"`
}

func (u User) GetDisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}

func (u User) IsAdminAccount() bool {
	return u.Username == models.AdminUserName
}

func (u User) GetRole() models.UserRole {
	if u.IsAdminAccount() {
		return models.UserRoleAdmin
	}
	for _, role := range u.Roles {
		if models.UserRole(role.Code).IsAdmin() {
			return models.UserRoleAdmin
		}
	}
	return models.UserRoleEmployee
}

type UserRole struct {
	UserID    string `gorm:"primaryKey;type:varchar(36)"`
	RoleID    string `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time
}
