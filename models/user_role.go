package models

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleEmployee UserRole = "EMPLOYEE"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin:    "Администратор",
	UserRoleEmployee: "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

type UserStatus int

const (
	UserStatusBlocked UserStatus = 0
	UserStatusActive  UserStatus = 1
)

type TypeStatus int

const (
	TypeStatusDisabled TypeStatus = 0
	TypeStatusEnabled  TypeStatus = 1
)
