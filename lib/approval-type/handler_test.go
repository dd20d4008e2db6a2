package approvaltypehandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rain-knows/approval-system/db"
	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
)

func setupTest(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	db.DB = gdb
	require.NoError(t, db.AutoMigrateDB())
	NewHandler()
}

func TestCreateDuplicateCode(t *testing.T) {
	setupTest(t)
	data := approvalapimodels.ApprovalTypeData{Code: "LEAVE", Name: "Отпуск"}

	id, hMsg, err := Instance.Create(data)
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.NotEmpty(t, id)

	_, hMsg, err = Instance.Create(data)
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}

func TestCreateValidation(t *testing.T) {
	setupTest(t)
	_, hMsg, err := Instance.Create(approvalapimodels.ApprovalTypeData{Code: "LEAVE"})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}

func TestUpdateCodeUniqueness(t *testing.T) {
	setupTest(t)
	_, hMsg, err := Instance.Create(approvalapimodels.ApprovalTypeData{Code: "LEAVE", Name: "Отпуск"})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	id, hMsg, err := Instance.Create(approvalapimodels.ApprovalTypeData{Code: "EXPENSE", Name: "Расходы"})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	// смена кода на занятый
	hMsg, err = Instance.Update(id, approvalapimodels.ApprovalTypeData{Code: "LEAVE", Name: "Расходы"})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	// обновление без смены кода проходит
	hMsg, err = Instance.Update(id, approvalapimodels.ApprovalTypeData{Code: "EXPENSE", Name: "Авансовые отчеты"})
	require.NoError(t, err)
	require.Empty(t, hMsg)
}

func TestSetStatusAffectsEnabledList(t *testing.T) {
	setupTest(t)
	id, hMsg, err := Instance.Create(approvalapimodels.ApprovalTypeData{Code: "LEAVE", Name: "Отпуск"})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	list, err := Instance.ListEnabled()
	require.NoError(t, err)
	require.Len(t, list, 1)

	hMsg, err = Instance.SetStatus(id, false)
	require.NoError(t, err)
	require.Empty(t, hMsg)

	list, err = Instance.ListEnabled()
	require.NoError(t, err)
	require.Empty(t, list)

	// в полном списке тип остается
	list, err = Instance.List()
	require.NoError(t, err)
	require.Len(t, list, 1)

	hMsg, err = Instance.SetStatus(id, true)
	require.NoError(t, err)
	require.Empty(t, hMsg)

	list, err = Instance.ListEnabled()
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestSetStatusUnknown(t *testing.T) {
	setupTest(t)
	hMsg, err := Instance.SetStatus("missing", true)
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}
