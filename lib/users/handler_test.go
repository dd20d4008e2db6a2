package usershandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rain-knows/approval-system/db"
	authutils "github.com/rain-knows/approval-system/lib/utils/auth-utils"
	"github.com/rain-knows/approval-system/models"
	usersapimodels "github.com/rain-knows/approval-system/models/api/users"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

func setupTest(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	db.DB = gdb
	require.NoError(t, db.AutoMigrateDB())
	db.InitPreload()
	NewHandler()
}

func TestCreateAndGet(t *testing.T) {
	setupTest(t)
	id, hMsg, err := Instance.Create(usersapimodels.UserData{
		Username: "ivanov",
		Password: "secret123",
		Nickname: "Иванов Иван",
		Email:    "ivanov@example.com",
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.NotEmpty(t, id)

	view, hMsg, err := Instance.GetByID(id)
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, "ivanov", view.Username)
	require.Equal(t, models.UserStatusActive, view.Status)

	// пароль хранится хешированным
	var rec dbmodels.User
	require.NoError(t, db.DB.Where("id = ?", id).First(&rec).Error)
	require.Equal(t, authutils.GetMD5Hash("secret123"), rec.Password)
}

func TestCreateDuplicateUsername(t *testing.T) {
	setupTest(t)
	_, hMsg, err := Instance.Create(usersapimodels.UserData{Username: "ivanov", Password: "secret123"})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	_, hMsg, err = Instance.Create(usersapimodels.UserData{Username: "ivanov", Password: "secret456"})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}

func TestCreateShortPassword(t *testing.T) {
	setupTest(t)
	_, hMsg, err := Instance.Create(usersapimodels.UserData{Username: "ivanov", Password: "123"})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}

func adminID(t *testing.T) string {
	t.Helper()
	var rec dbmodels.User
	require.NoError(t, db.DB.Where("username = ?", models.AdminUserName).First(&rec).Error)
	return rec.ID
}

func TestAdminCannotBeDeleted(t *testing.T) {
	setupTest(t)
	hMsg, err := Instance.Delete(adminID(t))
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	var count int64
	require.NoError(t, db.DB.Model(&dbmodels.User{}).
		Where("username = ?", models.AdminUserName).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAdminCannotBeBlocked(t *testing.T) {
	setupTest(t)
	hMsg, err := Instance.SetStatus(adminID(t), models.UserStatusBlocked)
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	// обычного пользователя заблокировать можно
	id, hMsg, err := Instance.Create(usersapimodels.UserData{Username: "ivanov", Password: "secret123"})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	hMsg, err = Instance.SetStatus(id, models.UserStatusBlocked)
	require.NoError(t, err)
	require.Empty(t, hMsg)

	view, _, err := Instance.GetByID(id)
	require.NoError(t, err)
	require.Equal(t, models.UserStatusBlocked, view.Status)
}

func TestChangePassword(t *testing.T) {
	setupTest(t)
	id, _, err := Instance.Create(usersapimodels.UserData{Username: "ivanov", Password: "secret123"})
	require.NoError(t, err)

	// неверный текущий пароль
	hMsg, err := Instance.ChangePassword(id, usersapimodels.ChangePasswordData{
		OldPassword: "wrong",
		NewPassword: "newsecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	// новый пароль совпадает с текущим
	hMsg, err = Instance.ChangePassword(id, usersapimodels.ChangePasswordData{
		OldPassword: "secret123",
		NewPassword: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	hMsg, err = Instance.ChangePassword(id, usersapimodels.ChangePasswordData{
		OldPassword: "secret123",
		NewPassword: "newsecret",
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	var rec dbmodels.User
	require.NoError(t, db.DB.Where("id = ?", id).First(&rec).Error)
	require.Equal(t, authutils.GetMD5Hash("newsecret"), rec.Password)
}

func TestListFilter(t *testing.T) {
	setupTest(t)
	_, _, err := Instance.Create(usersapimodels.UserData{Username: "ivanov", Password: "secret123", Nickname: "Иванов"})
	require.NoError(t, err)
	_, _, err = Instance.Create(usersapimodels.UserData{Username: "petrov", Password: "secret123", Nickname: "Петров"})
	require.NoError(t, err)

	list, rowCount, err := Instance.List(usersapimodels.UserFilter{Keyword: "petrov"})
	require.NoError(t, err)
	require.EqualValues(t, 1, rowCount)
	require.Len(t, list, 1)
	require.Equal(t, "petrov", list[0].Username)
}
