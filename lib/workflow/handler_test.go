package workflowhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rain-knows/approval-system/db"
	"github.com/rain-knows/approval-system/models"
	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

func setupTest(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	db.DB = gdb
	require.NoError(t, db.AutoMigrateDB())
	NewHandler()
}

func createType(t *testing.T, code string) {
	t.Helper()
	rec := dbmodels.ApprovalType{
		Code:   code,
		Name:   "Тип " + code,
		Status: models.TypeStatusEnabled,
	}
	require.NoError(t, db.DB.Create(&rec).Error)
}

func validSaveData() approvalapimodels.WorkflowSaveData {
	return approvalapimodels.WorkflowSaveData{
		Name: "Основной маршрут",
		Nodes: []approvalapimodels.WorkflowNodeData{
			{NodeName: "Руководитель", NodeOrder: 1, ApproverType: models.ApproverTypeDepartmentHead},
			{NodeName: "Администратор", NodeOrder: 2, ApproverType: models.ApproverTypeUser, ApproverID: models.FallbackAdminID},
		},
	}
}

func TestSaveTemplateUnknownType(t *testing.T) {
	setupTest(t)
	hMsg, err := Instance.SaveTemplate("UNKNOWN", validSaveData())
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}

func TestSaveTemplateValidation(t *testing.T) {
	setupTest(t)
	createType(t, "LEAVE")

	// пустой маршрут
	hMsg, err := Instance.SaveTemplate("LEAVE", approvalapimodels.WorkflowSaveData{Name: "x"})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	// дубль порядка этапа
	data := validSaveData()
	data.Nodes[1].NodeOrder = 1
	hMsg, err = Instance.SaveTemplate("LEAVE", data)
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	// USER без согласующего
	data = validSaveData()
	data.Nodes[1].ApproverID = ""
	hMsg, err = Instance.SaveTemplate("LEAVE", data)
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	// неизвестная стратегия
	data = validSaveData()
	data.Nodes[0].ApproverType = "MAGIC"
	hMsg, err = Instance.SaveTemplate("LEAVE", data)
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}

func TestSaveAndGetTemplate(t *testing.T) {
	setupTest(t)
	createType(t, "LEAVE")

	hMsg, err := Instance.SaveTemplate("LEAVE", validSaveData())
	require.NoError(t, err)
	require.Empty(t, hMsg)

	view, hMsg, err := Instance.GetByTypeCode("LEAVE")
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, "LEAVE", view.TypeCode)
	require.Len(t, view.Nodes, 2)
	require.Equal(t, 1, view.Nodes[0].NodeOrder)
	require.Equal(t, 2, view.Nodes[1].NodeOrder)
}

func TestSaveTemplateReplacesNodes(t *testing.T) {
	setupTest(t)
	createType(t, "LEAVE")

	hMsg, err := Instance.SaveTemplate("LEAVE", validSaveData())
	require.NoError(t, err)
	require.Empty(t, hMsg)

	// повторное сохранение заменяет этапы целиком, второй шаблон не появляется
	data := approvalapimodels.WorkflowSaveData{
		Name: "Сокращенный маршрут",
		Nodes: []approvalapimodels.WorkflowNodeData{
			{NodeName: "Единственный", NodeOrder: 1, ApproverType: models.ApproverTypeUser, ApproverID: models.FallbackAdminID},
		},
	}
	hMsg, err = Instance.SaveTemplate("LEAVE", data)
	require.NoError(t, err)
	require.Empty(t, hMsg)

	var templateCount int64
	require.NoError(t, db.DB.Model(&dbmodels.WorkflowTemplate{}).
		Where("type_code = ?", "LEAVE").Count(&templateCount).Error)
	require.EqualValues(t, 1, templateCount)

	view, hMsg, err := Instance.GetByTypeCode("LEAVE")
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, "Сокращенный маршрут", view.Name)
	require.Len(t, view.Nodes, 1)
	require.Equal(t, "Единственный", view.Nodes[0].NodeName)
}

func TestDeleteTemplate(t *testing.T) {
	setupTest(t)
	createType(t, "LEAVE")

	hMsg, err := Instance.SaveTemplate("LEAVE", validSaveData())
	require.NoError(t, err)
	require.Empty(t, hMsg)

	hMsg, err = Instance.DeleteByTypeCode("LEAVE")
	require.NoError(t, err)
	require.Empty(t, hMsg)

	_, hMsg, err = Instance.GetByTypeCode("LEAVE")
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	var nodeCount int64
	require.NoError(t, db.DB.Model(&dbmodels.WorkflowNodeTemplate{}).Count(&nodeCount).Error)
	require.EqualValues(t, 0, nodeCount)
}
