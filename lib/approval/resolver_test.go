package approvalhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rain-knows/approval-system/models"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

func TestResolveApproverUser(t *testing.T) {
	approverID := "user-42"
	tmpl := dbmodels.WorkflowNodeTemplate{
		ApproverType: models.ApproverTypeUser,
		ApproverID:   &approverID,
	}
	id, fallback := ResolveApprover(tmpl, nil)
	require.Equal(t, "user-42", id)
	require.False(t, fallback)
}

func TestResolveApproverUserWithoutRef(t *testing.T) {
	tmpl := dbmodels.WorkflowNodeTemplate{
		ApproverType: models.ApproverTypeUser,
	}
	id, fallback := ResolveApprover(tmpl, nil)
	require.Equal(t, models.FallbackAdminID, id)
	require.True(t, fallback)
}

func TestResolveApproverDepartmentHead(t *testing.T) {
	leaderID := "leader-7"
	tmpl := dbmodels.WorkflowNodeTemplate{
		ApproverType: models.ApproverTypeDepartmentHead,
	}
	dept := dbmodels.Department{LeaderID: &leaderID}
	id, fallback := ResolveApprover(tmpl, &dept)
	require.Equal(t, "leader-7", id)
	require.False(t, fallback)
}

func TestResolveApproverDepartmentHeadFallback(t *testing.T) {
	tmpl := dbmodels.WorkflowNodeTemplate{
		ApproverType: models.ApproverTypeDepartmentHead,
	}

	// подразделение не указано
	id, fallback := ResolveApprover(tmpl, nil)
	require.Equal(t, models.FallbackAdminID, id)
	require.True(t, fallback)

	// подразделение без руководителя
	id, fallback = ResolveApprover(tmpl, &dbmodels.Department{Name: "ИТ"})
	require.Equal(t, models.FallbackAdminID, id)
	require.True(t, fallback)

	empty := ""
	id, fallback = ResolveApprover(tmpl, &dbmodels.Department{LeaderID: &empty})
	require.Equal(t, models.FallbackAdminID, id)
	require.True(t, fallback)
}

func TestResolveApproverPosition(t *testing.T) {
	approverID := "position-holder"
	tmpl := dbmodels.WorkflowNodeTemplate{
		ApproverType: models.ApproverTypePosition,
		ApproverID:   &approverID,
	}
	id, fallback := ResolveApprover(tmpl, nil)
	require.Equal(t, "position-holder", id)
	require.False(t, fallback)
}

func TestResolveApproverUnknownStrategy(t *testing.T) {
	tmpl := dbmodels.WorkflowNodeTemplate{
		ApproverType: models.ApproverType("SOMETHING_NEW"),
	}
	id, fallback := ResolveApprover(tmpl, nil)
	require.Equal(t, models.FallbackAdminID, id)
	require.True(t, fallback)
}
