package approvalhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rain-knows/approval-system/db"
	notificationhandler "github.com/rain-knows/approval-system/lib/notification"
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
	db.InitPreload()
	notificationhandler.NewHandler()
	NewHandler()
}

func createDepartment(t *testing.T, name string, leaderID *string) dbmodels.Department {
	t.Helper()
	rec := dbmodels.Department{
		Name:     name,
		LeaderID: leaderID,
	}
	require.NoError(t, db.DB.Create(&rec).Error)
	return rec
}

func createUser(t *testing.T, username string, departmentID *string) dbmodels.User {
	t.Helper()
	rec := dbmodels.User{
		Username:     username,
		Password:     "x",
		Status:       models.UserStatusActive,
		DepartmentID: departmentID,
	}
	require.NoError(t, db.DB.Create(&rec).Error)
	return rec
}

func createApprovalType(t *testing.T, code string, status models.TypeStatus) dbmodels.ApprovalType {
	t.Helper()
	rec := dbmodels.ApprovalType{
		Code:   code,
		Name:   "Тестовый тип " + code,
		Status: status,
	}
	require.NoError(t, db.DB.Create(&rec).Error)
	return rec
}

func createWorkflow(t *testing.T, typeCode string, nodes ...dbmodels.WorkflowNodeTemplate) dbmodels.WorkflowTemplate {
	t.Helper()
	rec := dbmodels.WorkflowTemplate{
		TypeCode: typeCode,
		Name:     "Маршрут " + typeCode,
	}
	require.NoError(t, db.DB.Create(&rec).Error)
	for idx := range nodes {
		nodes[idx].WorkflowID = rec.ID
		require.NoError(t, db.DB.Create(&nodes[idx]).Error)
	}
	return rec
}

func strPtr(v string) *string {
	return &v
}

func recordCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.DB.Model(&dbmodels.ApprovalRecord{}).Count(&count).Error)
	return count
}

func TestCreateUnknownType(t *testing.T) {
	setupTest(t)
	initiator := createUser(t, "ivanov", nil)

	_, hMsg, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:    "Отпуск",
		TypeCode: "NO_SUCH_TYPE",
	})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
	require.Zero(t, recordCount(t))
}

func TestCreateDisabledType(t *testing.T) {
	setupTest(t)
	initiator := createUser(t, "ivanov", nil)
	createApprovalType(t, "DISABLED", models.TypeStatusDisabled)

	_, hMsg, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:    "Отпуск",
		TypeCode: "DISABLED",
	})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
	require.Zero(t, recordCount(t))
}

func TestCreateWithoutWorkflow(t *testing.T) {
	setupTest(t)
	initiator := createUser(t, "ivanov", nil)
	createApprovalType(t, "ORPHAN", models.TypeStatusEnabled)

	_, hMsg, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:    "Отпуск",
		TypeCode: "ORPHAN",
	})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
	require.Zero(t, recordCount(t))
}

func TestCreateWithEmptyWorkflow(t *testing.T) {
	setupTest(t)
	initiator := createUser(t, "ivanov", nil)
	createApprovalType(t, "EMPTY", models.TypeStatusEnabled)
	createWorkflow(t, "EMPTY")

	_, hMsg, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:    "Отпуск",
		TypeCode: "EMPTY",
	})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
	require.Zero(t, recordCount(t))
}

func TestCreateRollbackOnBrokenWorkflow(t *testing.T) {
	setupTest(t)
	initiator := createUser(t, "ivanov", nil)
	createApprovalType(t, "CONTRACT", models.TypeStatusEnabled)
	// узлы с одинаковым порядком записаны в обход сохранения маршрута,
	// второй узел нарушит уникальный индекс (approval_id, node_order)
	createWorkflow(t, "CONTRACT",
		dbmodels.WorkflowNodeTemplate{NodeName: "Первый", NodeOrder: 1, ApproverType: models.ApproverTypeUser, ApproverID: strPtr(models.FallbackAdminID)},
		dbmodels.WorkflowNodeTemplate{NodeName: "Дубль", NodeOrder: 1, ApproverType: models.ApproverTypeUser, ApproverID: strPtr(models.FallbackAdminID)},
	)

	_, _, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:    "Договор",
		TypeCode: "CONTRACT",
	})
	require.Error(t, err)
	require.Zero(t, recordCount(t))
	var nodeCount int64
	require.NoError(t, db.DB.Model(&dbmodels.ApprovalNode{}).Count(&nodeCount).Error)
	require.Zero(t, nodeCount)
}

func TestCreateResolvesApprovers(t *testing.T) {
	setupTest(t)
	leader := createUser(t, "leader", nil)
	dept := createDepartment(t, "ИТ", strPtr(leader.ID))
	initiator := createUser(t, "ivanov", strPtr(dept.ID))
	fixed := createUser(t, "buhgalter", nil)

	createApprovalType(t, "EXPENSE2", models.TypeStatusEnabled)
	createWorkflow(t, "EXPENSE2",
		dbmodels.WorkflowNodeTemplate{NodeName: "Руководитель", NodeOrder: 1, ApproverType: models.ApproverTypeDepartmentHead},
		dbmodels.WorkflowNodeTemplate{NodeName: "Бухгалтерия", NodeOrder: 2, ApproverType: models.ApproverTypeUser, ApproverID: strPtr(fixed.ID)},
		dbmodels.WorkflowNodeTemplate{NodeName: "Директор", NodeOrder: 3, ApproverType: models.ApproverTypePosition, ApproverID: strPtr(fixed.ID)},
	)

	view, hMsg, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:    "Командировка",
		TypeCode: "EXPENSE2",
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, models.RecordStatusPending, view.Status)
	require.Equal(t, 1, view.CurrentNodeOrder)
	require.Len(t, view.Nodes, 3)
	require.Equal(t, 1, view.Nodes[0].NodeOrder)
	require.Equal(t, 2, view.Nodes[1].NodeOrder)
	require.Equal(t, 3, view.Nodes[2].NodeOrder)
	require.Equal(t, leader.ID, view.Nodes[0].ApproverID)
	require.Equal(t, fixed.ID, view.Nodes[1].ApproverID)
	require.Equal(t, fixed.ID, view.Nodes[2].ApproverID)
	for _, node := range view.Nodes {
		require.Equal(t, models.NodeStatusPending, node.Status)
	}
}

func TestCreateDepartmentHeadFallback(t *testing.T) {
	setupTest(t)
	initiator := createUser(t, "ivanov", nil)

	createApprovalType(t, "LEAVE2", models.TypeStatusEnabled)
	createWorkflow(t, "LEAVE2",
		dbmodels.WorkflowNodeTemplate{NodeName: "Руководитель", NodeOrder: 1, ApproverType: models.ApproverTypeDepartmentHead},
	)

	view, hMsg, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:    "Отпуск",
		TypeCode: "LEAVE2",
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Len(t, view.Nodes, 1)
	require.Equal(t, models.FallbackAdminID, view.Nodes[0].ApproverID)
}

func TestCreateAttachesFiles(t *testing.T) {
	setupTest(t)
	initiator := createUser(t, "ivanov", nil)
	createApprovalType(t, "DOCS", models.TypeStatusEnabled)
	createWorkflow(t, "DOCS",
		dbmodels.WorkflowNodeTemplate{NodeName: "Проверка", NodeOrder: 1, ApproverType: models.ApproverTypeUser, ApproverID: strPtr(initiator.ID)},
	)
	attachment := dbmodels.Attachment{
		Name:        "договор.pdf",
		ObjectKey:   "attachments/test-1",
		ContentType: "application/pdf",
		Size:        10,
		UploadedBy:  initiator.ID,
	}
	require.NoError(t, db.DB.Create(&attachment).Error)

	view, hMsg, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:         "Договор",
		TypeCode:      "DOCS",
		AttachmentIDs: []string{attachment.ID},
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Len(t, view.Attachments, 1)
	require.Equal(t, "договор.pdf", view.Attachments[0].Name)

	// повторная привязка того же вложения отклоняется до записи в базу
	before := recordCount(t)
	_, hMsg, err = Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:         "Дубль",
		TypeCode:      "DOCS",
		AttachmentIDs: []string{attachment.ID},
	})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
	require.Equal(t, before, recordCount(t))

	// несуществующее вложение тоже отклоняется
	_, hMsg, err = Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:         "Без файла",
		TypeCode:      "DOCS",
		AttachmentIDs: []string{"missing"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
	require.Equal(t, before, recordCount(t))
}

func twoStepApproval(t *testing.T) (recID string, initiator, first, second dbmodels.User) {
	t.Helper()
	initiator = createUser(t, "ivanov", nil)
	first = createUser(t, "petrov", nil)
	second = createUser(t, "sidorov", nil)
	createApprovalType(t, "PURCHASE2", models.TypeStatusEnabled)
	createWorkflow(t, "PURCHASE2",
		dbmodels.WorkflowNodeTemplate{NodeName: "Первый", NodeOrder: 1, ApproverType: models.ApproverTypeUser, ApproverID: strPtr(first.ID)},
		dbmodels.WorkflowNodeTemplate{NodeName: "Второй", NodeOrder: 2, ApproverType: models.ApproverTypeUser, ApproverID: strPtr(second.ID)},
	)
	view, hMsg, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:    "Закупка",
		TypeCode: "PURCHASE2",
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	return view.ID, initiator, first, second
}

func TestApproveProgression(t *testing.T) {
	setupTest(t)
	recID, _, first, second := twoStepApproval(t)

	hMsg, err := Instance.Approve(recID, first.ID, approvalapimodels.DecisionData{Comment: "согласен"})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	view, err := Instance.GetDetail(recID)
	require.NoError(t, err)
	require.Equal(t, models.RecordStatusPending, view.Status)
	require.Equal(t, 2, view.CurrentNodeOrder)
	require.Equal(t, models.NodeStatusApproved, view.Nodes[0].Status)
	require.Equal(t, "согласен", view.Nodes[0].Comment)
	require.NotNil(t, view.Nodes[0].DecidedAt)

	hMsg, err = Instance.Approve(recID, second.ID, approvalapimodels.DecisionData{})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	view, err = Instance.GetDetail(recID)
	require.NoError(t, err)
	require.Equal(t, models.RecordStatusApproved, view.Status)
	require.NotNil(t, view.CompletedAt)
}

func TestApproveWrongUser(t *testing.T) {
	setupTest(t)
	recID, initiator, _, second := twoStepApproval(t)

	// на первом шаге решение за первым согласующим
	hMsg, err := Instance.Approve(recID, second.ID, approvalapimodels.DecisionData{})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	hMsg, err = Instance.Approve(recID, initiator.ID, approvalapimodels.DecisionData{})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	view, err := Instance.GetDetail(recID)
	require.NoError(t, err)
	require.Equal(t, 1, view.CurrentNodeOrder)
}

func TestRejectStopsFlow(t *testing.T) {
	setupTest(t)
	recID, _, first, second := twoStepApproval(t)

	hMsg, err := Instance.Reject(recID, first.ID, approvalapimodels.DecisionData{Comment: "нет бюджета"})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	view, err := Instance.GetDetail(recID)
	require.NoError(t, err)
	require.Equal(t, models.RecordStatusRejected, view.Status)
	require.NotNil(t, view.CompletedAt)
	require.Equal(t, models.NodeStatusRejected, view.Nodes[0].Status)
	require.Equal(t, "нет бюджета", view.Nodes[0].Comment)

	// после отклонения заявка не обрабатывается
	hMsg, err = Instance.Approve(recID, second.ID, approvalapimodels.DecisionData{})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}

func TestCancelOnlyInitiator(t *testing.T) {
	setupTest(t)
	recID, initiator, first, _ := twoStepApproval(t)

	hMsg, err := Instance.Cancel(recID, first.ID)
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)

	hMsg, err = Instance.Cancel(recID, initiator.ID)
	require.NoError(t, err)
	require.Empty(t, hMsg)

	view, err := Instance.GetDetail(recID)
	require.NoError(t, err)
	require.Equal(t, models.RecordStatusCancelled, view.Status)

	// отозванную заявку нельзя ни согласовать, ни отозвать повторно
	hMsg, err = Instance.Approve(recID, first.ID, approvalapimodels.DecisionData{})
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
	hMsg, err = Instance.Cancel(recID, initiator.ID)
	require.NoError(t, err)
	require.NotEmpty(t, hMsg)
}

func TestGetDetailNotFound(t *testing.T) {
	setupTest(t)
	_, err := Instance.GetDetail("00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
}

func TestGetMyApprovals(t *testing.T) {
	setupTest(t)
	initiator := createUser(t, "ivanov", nil)
	other := createUser(t, "petrov", nil)
	createApprovalType(t, "LEAVE3", models.TypeStatusEnabled)
	createWorkflow(t, "LEAVE3",
		dbmodels.WorkflowNodeTemplate{NodeName: "Шаг", NodeOrder: 1, ApproverType: models.ApproverTypeUser, ApproverID: strPtr(other.ID)},
	)

	for idx := 0; idx < 3; idx++ {
		_, hMsg, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
			Title:    "Отпуск",
			TypeCode: "LEAVE3",
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
	}
	_, hMsg, err := Instance.Create(other.ID, approvalapimodels.ApprovalCreateData{
		Title:    "Чужая",
		TypeCode: "LEAVE3",
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	list, rowCount, err := Instance.GetMyApprovals(initiator.ID, approvalapimodels.ApprovalFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 3, rowCount)
	require.Len(t, list, 3)
	for _, item := range list {
		require.Equal(t, initiator.ID, item.InitiatorID)
	}

	// фильтр по статусу
	pending := models.RecordStatusPending
	list, rowCount, err = Instance.GetMyApprovals(initiator.ID, approvalapimodels.ApprovalFilter{Status: &pending})
	require.NoError(t, err)
	require.EqualValues(t, 3, rowCount)
	approved := models.RecordStatusApproved
	list, rowCount, err = Instance.GetMyApprovals(initiator.ID, approvalapimodels.ApprovalFilter{Status: &approved})
	require.NoError(t, err)
	require.EqualValues(t, 0, rowCount)
	require.Empty(t, list)
}

func TestPendingForMe(t *testing.T) {
	setupTest(t)
	recID, _, first, second := twoStepApproval(t)

	list, err := Instance.PendingForMe(first.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, recID, list[0].ID)

	// второй согласующий увидит заявку только после решения первого
	list, err = Instance.PendingForMe(second.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	hMsg, err := Instance.Approve(recID, first.ID, approvalapimodels.DecisionData{})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	list, err = Instance.PendingForMe(first.ID)
	require.NoError(t, err)
	require.Empty(t, list)
	list, err = Instance.PendingForMe(second.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestApproveCreatesNotifications(t *testing.T) {
	setupTest(t)
	recID, initiator, first, second := twoStepApproval(t)

	hMsg, err := Instance.Approve(recID, first.ID, approvalapimodels.DecisionData{})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	var count int64
	require.NoError(t, db.DB.Model(&dbmodels.Notification{}).
		Where("user_id = ?", second.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	hMsg, err = Instance.Approve(recID, second.ID, approvalapimodels.DecisionData{})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	require.NoError(t, db.DB.Model(&dbmodels.Notification{}).
		Where("user_id = ?", initiator.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

// сценарий на предзаполненных данных: тип LEAVE и маршрут из двух этапов
func TestEndToEndPreloadedLeave(t *testing.T) {
	setupTest(t)
	leader := createUser(t, "leader", nil)
	dept := createDepartment(t, "Отдел продаж", strPtr(leader.ID))
	initiator := createUser(t, "ivanov", strPtr(dept.ID))

	view, hMsg, err := Instance.Create(initiator.ID, approvalapimodels.ApprovalCreateData{
		Title:    "Отпуск с 1 по 14 июля",
		TypeCode: "LEAVE",
		Content:  "Ежегодный оплачиваемый отпуск",
	})
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Len(t, view.Nodes, 2)
	require.Equal(t, leader.ID, view.Nodes[0].ApproverID)
	require.Equal(t, models.FallbackAdminID, view.Nodes[1].ApproverID)

	hMsg, err = Instance.Approve(view.ID, leader.ID, approvalapimodels.DecisionData{})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	hMsg, err = Instance.Approve(view.ID, models.FallbackAdminID, approvalapimodels.DecisionData{})
	require.NoError(t, err)
	require.Empty(t, hMsg)

	final, err := Instance.GetDetail(view.ID)
	require.NoError(t, err)
	require.Equal(t, models.RecordStatusApproved, final.Status)
}
